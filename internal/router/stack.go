package router

// ScreenStack holds the presentation history, top of stack last.
type ScreenStack struct {
	items []Screen
}

func (s *ScreenStack) Push(screen Screen) {
	if screen == nil {
		return
	}
	s.items = append(s.items, screen)
}

func (s *ScreenStack) Pop() Screen {
	if len(s.items) == 0 {
		return nil
	}
	last := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return last
}

func (s ScreenStack) Top() Screen {
	if len(s.items) == 0 {
		return nil
	}
	return s.items[len(s.items)-1]
}

func (s ScreenStack) Below() Screen {
	if len(s.items) < 2 {
		return nil
	}
	return s.items[len(s.items)-2]
}

func (s ScreenStack) Len() int {
	return len(s.items)
}

func (s *ScreenStack) replaceTop(screen Screen) {
	if len(s.items) == 0 || screen == nil {
		return
	}
	s.items[len(s.items)-1] = screen
}

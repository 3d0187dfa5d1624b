package keys

func WithLockForTest(s *State, f func()) {
	s.with(f)
}

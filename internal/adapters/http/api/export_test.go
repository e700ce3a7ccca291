package api

// WaitCache blocks until buffered cache writes land.
func (s *Server) WaitCache() { s.cache.wait() }

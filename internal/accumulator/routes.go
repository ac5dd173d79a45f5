package accumulator

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts all accumulator endpoints onto the given router
// under the /accumulator prefix.
func (s *Service) RegisterRoutes(r chi.Router) {
	r.Route("/accumulator", func(r chi.Router) {
		r.Post("/", s.CreateSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Delete("/", s.DeleteSession)
			r.Post("/apply", s.Apply)
			r.Post("/undo", s.Undo)
			r.Post("/redo", s.Redo)
			r.Get("/result", s.Result)
			r.Get("/history", s.History)
		})
	})
}

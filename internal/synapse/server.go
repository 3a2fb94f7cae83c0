package synapse

import (
	"context"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// ObservationHandler decides the action(s) for an incoming observation.
type ObservationHandler func(ob *Observation) ([]map[string]any, error)

// Server is the axon side of the synapse: it receives observations from
// validators and answers with the miner's chosen action.
type Server struct {
	app     *fiber.App
	cfg     Config
	handler ObservationHandler
}

func NewServer(cfg Config, handler ObservationHandler) *Server {
	fiberCfg := fiber.Config{}
	if cfg.BodyLimit > 0 {
		fiberCfg.BodyLimit = cfg.BodyLimit
	}
	app := fiber.New(fiberCfg)

	app.Use(ZstdMiddleware())
	app.Use(VerifySignatureMiddleware())

	s := &Server{app: app, cfg: cfg, handler: handler}
	app.Post("/observation", s.handleObservation)
	return s
}

func (s *Server) handleObservation(c *fiber.Ctx) error {
	var ob Observation
	if err := sonic.Unmarshal(c.Body(), &ob); err != nil {
		log.Error().Err(err).Msg("failed to unmarshal observation")
		return c.Status(fiber.StatusBadRequest).SendString("invalid payload")
	}

	log.Info().
		Str("validator", c.Get("x-hotkey")).
		Int("action_space", len(ob.ActionSpace)).
		Msg("received observation")

	action, err := s.handler(&ob)
	if err != nil {
		log.Error().Err(err).Msg("observation handler failed")
		return c.Status(fiber.StatusInternalServerError).SendString("handler error")
	}

	ob.Action = action
	return c.Status(fiber.StatusOK).JSON(ob)
}

func (s *Server) Start(ctx context.Context) error {
	go func() {
		if err := s.app.Listen(s.cfg.Address); err != nil {
			log.Error().Err(err).Msg("server listen failed")
		}
	}()
	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.Shutdown(shutdownCtx)
}

func (s *Server) Shutdown(_ context.Context) error {
	return s.app.Shutdown()
}

package router

import (
	"github.com/vertexlabs/go-auth-boilerplate/internal/application"
	"github.com/vertexlabs/go-auth-boilerplate/internal/container"
	handlers "github.com/vertexlabs/go-auth-boilerplate/internal/interface/http"
	"github.com/vertexlabs/go-auth-boilerplate/internal/router/modules"
)

// InitModules wires the feature modules from the container singletons and
// adds them to the registry. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	log := container.GetLogger()
	repo := container.GetVertexRepo()

	people := application.NewPersonStore(repo)
	indexer := application.NewPersonIndexer(container.GetES(), cfg.ESPersonsIndex, log)
	auth := application.NewAuthService(people, log, cfg.BcryptCost)
	profiles := application.NewProfileService(people, log, cfg.BcryptCost)

	authHandler := handlers.NewAuthHandler(auth, container.GetSessions(), log, cfg, container.GetRabbitPub(), indexer)
	vertexHandler := handlers.NewVertexHandler(repo, people, profiles, indexer, container.GetGCS(), log, cfg)

	r.Add(modules.NewAuthModule(authHandler))
	r.Add(modules.NewVertexModule(vertexHandler))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}

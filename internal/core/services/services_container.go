package services

import (
	portsrepo "github.com/storynest/storynest-backend/internal/core/ports/repositories"
	portssvc "github.com/storynest/storynest-backend/internal/core/ports/services"
	"github.com/storynest/storynest-backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, notifier portssvc.NotifierSvc) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Notifier = notifier
	container.TokenService = NewTokenService(cfg)
	container.User = NewUserService(repos.UserRepo)
	container.Session = NewSessionService(cfg, repos.SessionRepo, repos.UserRepo, container.TokenService)
	container.Auth = NewAuthService(cfg, repos.UserRepo, repos.OAuthLinkRepo, repos.VerificationRepo, container.Session, notifier)
	container.GoogleOAuthHandler = NewGoogleOAuthHandlerService(cfg)
	container.Story = NewStoryService(repos.StoryRepo, container.User)

	return container
}

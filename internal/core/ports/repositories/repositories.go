package repositories

// RepositoryProvider holds instances of all the application repositories.
// Constructed once at startup and handed to the service container.
type RepositoryProvider struct {
	UserRepo         UserRepositoryFacade
	SessionRepo      SessionRepository
	OAuthLinkRepo    OAuthLinkRepository
	VerificationRepo VerificationRepository
	StoryRepo        StoryRepositoryFacade
}

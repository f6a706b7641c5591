package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/storynest/storynest-backend/internal/apperrors"
	"github.com/storynest/storynest-backend/internal/core/domain"
	portssvc "github.com/storynest/storynest-backend/internal/core/ports/services"
	"github.com/storynest/storynest-backend/internal/core/services"
	"github.com/storynest/storynest-backend/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock StoryRepository ---
type MockStoryRepository struct {
	mock.Mock
}

func (m *MockStoryRepository) FindStoryByID(ctx context.Context, storyID string) (*domain.Story, error) {
	args := m.Called(ctx, storyID)
	var story *domain.Story
	if args.Get(0) != nil {
		story = args.Get(0).(*domain.Story)
	}
	return story, args.Error(1)
}

func (m *MockStoryRepository) FindStoriesForUser(ctx context.Context, userID string, limit int, offset int) ([]domain.Story, error) {
	args := m.Called(ctx, userID, limit, offset)
	var stories []domain.Story
	if args.Get(0) != nil {
		stories = args.Get(0).([]domain.Story)
	}
	return stories, args.Error(1)
}

func (m *MockStoryRepository) SaveStory(ctx context.Context, story domain.Story) error {
	args := m.Called(ctx, story)
	return args.Error(0)
}

func (m *MockStoryRepository) UpdateStory(ctx context.Context, story domain.Story) error {
	args := m.Called(ctx, story)
	return args.Error(0)
}

func (m *MockStoryRepository) DeleteStory(ctx context.Context, storyID string) error {
	args := m.Called(ctx, storyID)
	return args.Error(0)
}

// --- Mock UserWriterSvc ---
type MockUserWriterSvc struct {
	mock.Mock
}

func (m *MockUserWriterSvc) UpdateProfile(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, userID, req)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserWriterSvc) IncrementStoryCount(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// --- Test Suite ---
type StoryServiceTestSuite struct {
	suite.Suite
	mockStoryRepo *MockStoryRepository
	mockUserSvc   *MockUserWriterSvc
	service       portssvc.StorySvcFacade

	owner    *domain.User
	stranger *domain.User
	admin    *domain.User
}

func (suite *StoryServiceTestSuite) SetupTest() {
	suite.mockStoryRepo = new(MockStoryRepository)
	suite.mockUserSvc = new(MockUserWriterSvc)
	suite.service = services.NewStoryService(suite.mockStoryRepo, suite.mockUserSvc)

	suite.owner = &domain.User{UserID: uuid.NewString(), Role: domain.RoleUser}
	suite.stranger = &domain.User{UserID: uuid.NewString(), Role: domain.RoleUser}
	suite.admin = &domain.User{UserID: uuid.NewString(), Role: domain.RoleAdmin}
}

func (suite *StoryServiceTestSuite) privateStory() *domain.Story {
	return &domain.Story{
		StoryID:  uuid.NewString(),
		OwnerID:  suite.owner.UserID,
		Title:    "The Moon Rabbit",
		IsPublic: false,
	}
}

func (suite *StoryServiceTestSuite) TestCreateStory_Success() {
	ctx := context.Background()
	req := dto.CreateStoryRequest{Title: "The Moon Rabbit", IsPublic: false}

	suite.mockStoryRepo.On("SaveStory", ctx, mock.MatchedBy(func(s domain.Story) bool {
		return s.OwnerID == suite.owner.UserID && s.Title == req.Title && s.StoryID != ""
	})).Return(nil).Once()
	suite.mockUserSvc.On("IncrementStoryCount", ctx, suite.owner.UserID).Return(nil).Once()

	story, err := suite.service.CreateStory(ctx, suite.owner, req)

	suite.Require().NoError(err)
	suite.Equal(suite.owner.UserID, story.OwnerID)
	suite.mockStoryRepo.AssertExpectations(suite.T())
	suite.mockUserSvc.AssertExpectations(suite.T())
}

func (suite *StoryServiceTestSuite) TestCreateStory_CounterFailureDoesNotFailCreate() {
	ctx := context.Background()
	req := dto.CreateStoryRequest{Title: "The Moon Rabbit"}

	suite.mockStoryRepo.On("SaveStory", ctx, mock.AnythingOfType("domain.Story")).Return(nil).Once()
	suite.mockUserSvc.On("IncrementStoryCount", ctx, suite.owner.UserID).Return(assert.AnError).Once()

	story, err := suite.service.CreateStory(ctx, suite.owner, req)

	suite.Require().NoError(err)
	suite.NotNil(story)
}

func (suite *StoryServiceTestSuite) TestGetStory_OwnerReadsPrivate() {
	ctx := context.Background()
	story := suite.privateStory()
	suite.mockStoryRepo.On("FindStoryByID", ctx, story.StoryID).Return(story, nil).Once()

	got, err := suite.service.GetStory(ctx, suite.owner, story.StoryID)

	suite.Require().NoError(err)
	suite.Equal(story, got)
}

func (suite *StoryServiceTestSuite) TestGetStory_StrangerDeniedOnPrivate() {
	ctx := context.Background()
	story := suite.privateStory()
	suite.mockStoryRepo.On("FindStoryByID", ctx, story.StoryID).Return(story, nil).Once()

	got, err := suite.service.GetStory(ctx, suite.stranger, story.StoryID)

	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *StoryServiceTestSuite) TestGetStory_PublicReadableByAnyone() {
	ctx := context.Background()
	story := suite.privateStory()
	story.IsPublic = true
	suite.mockStoryRepo.On("FindStoryByID", ctx, story.StoryID).Return(story, nil).Once()

	got, err := suite.service.GetStory(ctx, suite.stranger, story.StoryID)

	suite.Require().NoError(err)
	suite.Equal(story, got)
}

func (suite *StoryServiceTestSuite) TestGetStory_AdminReadsAnything() {
	ctx := context.Background()
	story := suite.privateStory()
	suite.mockStoryRepo.On("FindStoryByID", ctx, story.StoryID).Return(story, nil).Once()

	got, err := suite.service.GetStory(ctx, suite.admin, story.StoryID)

	suite.Require().NoError(err)
	suite.Equal(story, got)
}

func (suite *StoryServiceTestSuite) TestGetStory_NotFoundPassesThrough() {
	ctx := context.Background()
	storyID := uuid.NewString()
	suite.mockStoryRepo.On("FindStoryByID", ctx, storyID).Return(nil, apperrors.ErrNotFound).Once()

	got, err := suite.service.GetStory(ctx, suite.owner, storyID)

	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *StoryServiceTestSuite) TestUpdateStory_PublicDoesNotGrantWrite() {
	ctx := context.Background()
	story := suite.privateStory()
	story.IsPublic = true
	newTitle := "Hijacked"
	suite.mockStoryRepo.On("FindStoryByID", ctx, story.StoryID).Return(story, nil).Once()

	got, err := suite.service.UpdateStory(ctx, suite.stranger, story.StoryID, dto.UpdateStoryRequest{Title: &newTitle})

	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockStoryRepo.AssertNotCalled(suite.T(), "UpdateStory")
}

func (suite *StoryServiceTestSuite) TestUpdateStory_OwnerAppliesPartialChanges() {
	ctx := context.Background()
	story := suite.privateStory()
	newTitle := "The Sun Rabbit"
	makePublic := true

	suite.mockStoryRepo.On("FindStoryByID", ctx, story.StoryID).Return(story, nil).Once()
	suite.mockStoryRepo.On("UpdateStory", ctx, mock.MatchedBy(func(s domain.Story) bool {
		return s.Title == newTitle && s.IsPublic && s.UpdatedAt.After(time.Time{})
	})).Return(nil).Once()

	got, err := suite.service.UpdateStory(ctx, suite.owner, story.StoryID, dto.UpdateStoryRequest{Title: &newTitle, IsPublic: &makePublic})

	suite.Require().NoError(err)
	suite.Equal(newTitle, got.Title)
	suite.True(got.IsPublic)
}

func (suite *StoryServiceTestSuite) TestDeleteStory_StrangerDenied() {
	ctx := context.Background()
	story := suite.privateStory()
	suite.mockStoryRepo.On("FindStoryByID", ctx, story.StoryID).Return(story, nil).Once()

	err := suite.service.DeleteStory(ctx, suite.stranger, story.StoryID)

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockStoryRepo.AssertNotCalled(suite.T(), "DeleteStory")
}

func (suite *StoryServiceTestSuite) TestDeleteStory_AdminAllowed() {
	ctx := context.Background()
	story := suite.privateStory()
	suite.mockStoryRepo.On("FindStoryByID", ctx, story.StoryID).Return(story, nil).Once()
	suite.mockStoryRepo.On("DeleteStory", ctx, story.StoryID).Return(nil).Once()

	suite.NoError(suite.service.DeleteStory(ctx, suite.admin, story.StoryID))
	suite.mockStoryRepo.AssertExpectations(suite.T())
}

func (suite *StoryServiceTestSuite) TestListStories_Delegates() {
	ctx := context.Background()
	expected := []domain.Story{{StoryID: uuid.NewString(), OwnerID: suite.owner.UserID}}
	suite.mockStoryRepo.On("FindStoriesForUser", ctx, suite.owner.UserID, 20, 0).Return(expected, nil).Once()

	stories, err := suite.service.ListStories(ctx, suite.owner, 20, 0)

	suite.Require().NoError(err)
	suite.Equal(expected, stories)
}

func TestStoryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(StoryServiceTestSuite))
}

package reset

import (
	"context"
	c "resetpoint/internal/core/domain/common"
	"resetpoint/internal/core/domain/reset"
	"resetpoint/internal/core/domain/user"
	"resetpoint/internal/db"
	dbuser "resetpoint/internal/db/user"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/suite"
)

const TOKEN_DIGEST = "test-token-digest"

var NOW time.Time = time.Date(2020, 6, 6, 15, 30, 30, 0, time.UTC)

type testSuite struct {
	suite.Suite
	pool     *pgxpool.Pool
	repo     *PgxRequestRepository
	userRepo *dbuser.PgxDirectory
	user     user.User
}

func (suite *testSuite) SetupSuite() {
	suite.pool = db.CreateTestPool()
	suite.repo = NewPgxRequestRepository(suite.pool)
	suite.userRepo = dbuser.NewPgxDirectory(suite.pool)
}

func (suite *testSuite) TearDownSuite() {
	suite.pool.Close()
}

func (suite *testSuite) SetupTest() {
	u, err := suite.userRepo.Create(context.Background(), user.CreateUserInput{
		Email:        c.Email("test@test.test"),
		PasswordHash: user.PasswordHash("test-hash"),
		CreatedAt:    NOW,
	})
	suite.Require().Nil(err)
	suite.user = u
}

func (suite *testSuite) TearDownTest() {
	db.TruncateTables(suite.pool)
}

func TestPgxRequestRepository(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) TestCreateSuccess() {
	input := reset.CreateInput{
		UserID:      suite.user.ID,
		TokenDigest: reset.TokenDigest(TOKEN_DIGEST),
		ExpiresAt:   NOW.Add(time.Hour),
		CreatedAt:   NOW,
	}
	request, err := suite.repo.Create(context.Background(), input)

	assert := suite.Require()
	assert.Nil(err)
	_, parseErr := uuid.Parse(string(request.ID))
	assert.Nil(parseErr)
	assert.Equal(input.UserID, request.UserID)
	assert.Equal(input.TokenDigest, request.TokenDigest)
	assert.True(input.ExpiresAt.Equal(request.ExpiresAt))
	assert.True(input.CreatedAt.Equal(request.CreatedAt))
}

func (suite *testSuite) TestCreateConflictWhilePending() {
	input := reset.CreateInput{
		UserID:      suite.user.ID,
		TokenDigest: reset.TokenDigest(TOKEN_DIGEST),
		ExpiresAt:   NOW.Add(time.Hour),
		CreatedAt:   NOW,
	}
	_, err := suite.repo.Create(context.Background(), input)

	assert := suite.Require()
	assert.Nil(err)

	_, err = suite.repo.Create(context.Background(), input)
	assert.ErrorIs(err, reset.ErrResetAlreadyPending)
}

func (suite *testSuite) TestCreateClearsExpiredRequest() {
	expired := reset.CreateInput{
		UserID:      suite.user.ID,
		TokenDigest: reset.TokenDigest(TOKEN_DIGEST),
		ExpiresAt:   NOW.Add(time.Hour),
		CreatedAt:   NOW,
	}
	old, err := suite.repo.Create(context.Background(), expired)

	assert := suite.Require()
	assert.Nil(err)

	fresh := reset.CreateInput{
		UserID:      suite.user.ID,
		TokenDigest: reset.TokenDigest("fresh-digest"),
		ExpiresAt:   NOW.Add(time.Hour * 3),
		CreatedAt:   NOW.Add(time.Hour * 2),
	}
	request, err := suite.repo.Create(context.Background(), fresh)
	assert.Nil(err)
	assert.NotEqual(old.ID, request.ID)

	_, err = suite.repo.GetByID(context.Background(), old.ID)
	assert.ErrorIs(err, reset.ErrRequestDoesNotExist)
}

func (suite *testSuite) TestGetByID() {
	created := suite.createRequest(suite.user.ID)

	request, err := suite.repo.GetByID(context.Background(), created.ID)

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(created.ID, request.ID)
	assert.Equal(created.UserID, request.UserID)
	assert.Equal(created.TokenDigest, request.TokenDigest)
	assert.True(created.ExpiresAt.Equal(request.ExpiresAt))
}

func (suite *testSuite) TestGetByIDNotFound() {
	_, err := suite.repo.GetByID(context.Background(), reset.ID(uuid.NewString()))
	suite.Require().ErrorIs(err, reset.ErrRequestDoesNotExist)
}

func (suite *testSuite) TestGetByIDMalformed() {
	_, err := suite.repo.GetByID(context.Background(), reset.ID("not-a-uuid"))
	suite.Require().ErrorIs(err, reset.ErrRequestDoesNotExist)
}

func (suite *testSuite) TestDeleteAllForUser() {
	created := suite.createRequest(suite.user.ID)

	otherUser, err := suite.userRepo.Create(context.Background(), user.CreateUserInput{
		Email:        c.Email("other@test.test"),
		PasswordHash: user.PasswordHash("test-hash"),
		CreatedAt:    NOW,
	})

	assert := suite.Require()
	assert.Nil(err)
	otherRequest := suite.createRequest(otherUser.ID)

	deleted, err := suite.repo.DeleteAllForUser(context.Background(), suite.user.ID)
	assert.Nil(err)
	assert.Equal([]reset.ID{created.ID}, deleted)

	_, err = suite.repo.GetByID(context.Background(), created.ID)
	assert.ErrorIs(err, reset.ErrRequestDoesNotExist)

	_, err = suite.repo.GetByID(context.Background(), otherRequest.ID)
	assert.Nil(err)
}

func (suite *testSuite) TestDeleteAllForUserNoRequests() {
	deleted, err := suite.repo.DeleteAllForUser(context.Background(), suite.user.ID)

	assert := suite.Require()
	assert.Nil(err)
	assert.Empty(deleted)
}

func (suite *testSuite) createRequest(userID user.ID) reset.Request {
	request, err := suite.repo.Create(context.Background(), reset.CreateInput{
		UserID:      userID,
		TokenDigest: reset.TokenDigest(TOKEN_DIGEST),
		ExpiresAt:   NOW.Add(time.Hour),
		CreatedAt:   NOW,
	})
	suite.Require().Nil(err)
	return request
}

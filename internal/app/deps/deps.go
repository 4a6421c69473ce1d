package deps

import (
	"context"
	"resetpoint/internal/config"
	dl "resetpoint/internal/core/domain/logging"
	"resetpoint/internal/core/domain/reset"
	duow "resetpoint/internal/core/domain/unit_of_work"
	"resetpoint/internal/core/domain/user"
	dbreset "resetpoint/internal/db/reset"
	uow "resetpoint/internal/db/unit_of_work"
	dbuser "resetpoint/internal/db/user"
	"resetpoint/internal/implementations/email"
	"resetpoint/internal/implementations/logging"
	passwordhasher "resetpoint/internal/implementations/password_hasher"
	tokencodec "resetpoint/internal/implementations/token_codec"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/jackc/pgx/v4/pgxpool"
)

type Deps struct {
	Config    *config.Config
	AwsConfig aws.Config
	Logger    dl.Logger

	DB *pgxpool.Pool

	Now func() time.Time

	UnitOfWork        duow.UnitOfWork
	UserDirectory     user.Directory
	RequestRepository reset.RequestRepository

	EmailSender *email.EmailSender

	TokenCodec     reset.TokenCodec
	PasswordHasher user.PasswordHasher
}

func InitDeps() (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig()
	deps.initAwsConfig()

	closeLogger := deps.initLogger()
	closePgxPool := deps.initPgxPool()

	deps.UnitOfWork = uow.NewPgxUnitOfWork(deps.DB)
	deps.UserDirectory = dbuser.NewPgxDirectory(deps.DB)
	deps.RequestRepository = dbreset.NewPgxRequestRepository(deps.DB)

	deps.EmailSender = email.NewEmailSender(
		deps.AwsConfig,
		deps.Config.AwsEmailSender,
		deps.Config.AwsEmailResetLinkTemplate,
		deps.Config.ResetLinkBaseURL,
		deps.Config.AwsEmailPasswordChangedTemplate,
	)

	deps.Now = func() time.Time { return time.Now().UTC() }
	deps.TokenCodec = tokencodec.NewHMAC(deps.Config.Secret)
	deps.PasswordHasher = passwordhasher.NewBcrypt(deps.Config.Secret, deps.Config.BcryptHasherCost)

	return deps, func() {
		closeFuncs := []func(){
			closePgxPool,
			closeLogger,
		}

		var wg sync.WaitGroup
		wg.Add(len(closeFuncs))
		for _, closeFunc := range closeFuncs {
			closeFunc := closeFunc
			go func() {
				closeFunc()
				wg.Done()
			}()
		}

		wg.Wait()
	}
}

func (deps *Deps) initConfig() {
	config, err := config.Load()
	if err != nil {
		panic(err)
	}
	deps.Config = config
}

func (deps *Deps) initAwsConfig() {
	cfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithRegion(deps.Config.AwsRegion),
		awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				deps.Config.AwsAccessKey,
				deps.Config.AwsSecretKey,
				"",
			),
		),
		awsConfig.WithRetryer(func() aws.Retryer {
			return retry.AddWithMaxAttempts(
				retry.AddWithMaxBackoffDelay(retry.NewStandard(), time.Second*5),
				3,
			)
		}),
	)
	if err != nil {
		panic(err)
	}
	deps.AwsConfig = cfg
}

func (deps *Deps) initLogger() func() {
	logger := logging.NewZapLogger()
	deps.Logger = logger
	return func() { logger.Sync() }
}

func (deps *Deps) initPgxPool() func() {
	db, err := pgxpool.Connect(context.Background(), deps.Config.PostgresqlURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to DB.", dl.Entry("err", err))
		panic(err)
	}
	deps.DB = db
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down DB connection.")
		db.Close()
		deps.Logger.Info(context.Background(), "DB connection shut down.")
	}
}

//go:build wireinject
// +build wireinject

// 依赖注入声明，wire gen ./cmd/api 生成 wire_gen.go

package main

import (
	"context"
	"database/sql"

	"github.com/google/wire"

	"github.com/xiebiao/bookstore-api/internal/application"
	appauthor "github.com/xiebiao/bookstore-api/internal/application/author"
	appaward "github.com/xiebiao/bookstore-api/internal/application/award"
	appbook "github.com/xiebiao/bookstore-api/internal/application/book"
	appcheckout "github.com/xiebiao/bookstore-api/internal/application/checkout"
	apporder "github.com/xiebiao/bookstore-api/internal/application/order"
	apppublisher "github.com/xiebiao/bookstore-api/internal/application/publisher"
	apprating "github.com/xiebiao/bookstore-api/internal/application/rating"
	appseries "github.com/xiebiao/bookstore-api/internal/application/series"
	appuser "github.com/xiebiao/bookstore-api/internal/application/user"
	"github.com/xiebiao/bookstore-api/internal/domain/user"
	"github.com/xiebiao/bookstore-api/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-api/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookstore-api/internal/interface/http/handler"
	"github.com/xiebiao/bookstore-api/internal/interface/http/router"
)

// infrastructureSet 配置、日志、数据库、Redis、MQ
var infrastructureSet = wire.NewSet(
	provideLogger,
	provideDB,
	provideSQLDB,
	provideRedis,
	provideSessionStore,
	provideJWTManager,
	provideEventPublisher,
)

// repositorySet 仓储与事务
var repositorySet = wire.NewSet(
	mysql.NewUserRepository,
	mysql.NewBookRepository,
	mysql.NewEditionRepository,
	mysql.NewAuthorRepository,
	mysql.NewPublisherRepository,
	mysql.NewSeriesRepository,
	mysql.NewAwardRepository,
	mysql.NewRatingRepository,
	mysql.NewCheckoutRepository,
	mysql.NewOrderRepository,
	mysql.NewTxManager,
	wire.Bind(new(application.Transactor), new(*mysql.TxManager)),
	provideBookExister,
)

// applicationSet 领域服务与用例
var applicationSet = wire.NewSet(
	user.NewService,
	appuser.NewRegisterUseCase,
	appuser.NewProfileQuery,
	provideLoginUseCase,
	provideLogoutUseCase,
	appbook.NewService,
	appbook.NewEditionService,
	appauthor.NewService,
	apppublisher.NewService,
	appseries.NewService,
	appaward.NewService,
	apprating.NewService,
	appcheckout.NewService,
	apporder.NewCreateOrderUseCase,
	apporder.NewUpdateOrderUseCase,
	apporder.NewDeleteOrderUseCase,
	apporder.NewQueryService,
)

// interfaceSet HTTP处理器、中间件、路由和gRPC健康检查
var interfaceSet = wire.NewSet(
	provideAuthMiddleware,
	handler.NewHealthHandler,
	wire.Bind(new(handler.Pinger), new(*sql.DB)),
	handler.NewUserHandler,
	handler.NewBookHandler,
	handler.NewEditionHandler,
	handler.NewAuthorHandler,
	handler.NewPublisherHandler,
	handler.NewSeriesHandler,
	handler.NewAwardHandler,
	handler.NewRatingHandler,
	handler.NewCheckoutHandler,
	handler.NewOrderHandler,
	wire.Struct(new(router.Handlers), "*"),
	router.New,
	NewServer,
	provideHealthServer,
	wire.Struct(new(App), "*"),
)

// InitializeApp 组装应用，cleanup按创建的逆序释放资源
func InitializeApp(ctx context.Context, cfg *config.Config) (*App, func(), error) {
	wire.Build(infrastructureSet, repositorySet, applicationSet, interfaceSet)
	return nil, nil, nil
}

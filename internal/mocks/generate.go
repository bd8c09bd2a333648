package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Provider --dir ../domain/live --output domain/live --outpkg livemock --filename provider_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/history --output domain/history --outpkg historymock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Refiner --dir ../domain/signal --output domain/signal --outpkg signalmock --filename refiner_mock.go

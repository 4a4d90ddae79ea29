package main

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"
	"github.com/go-chi/chi/v5"

	"github.com/saulo-duarte/quizforge/internal/config"
	"github.com/saulo-duarte/quizforge/internal/container"
	"github.com/saulo-duarte/quizforge/internal/router"
)

var adapter *chiadapter.ChiLambdaV2

func init() {
	c, err := container.New(context.Background())
	if err != nil {
		config.Logger.WithError(err).Fatal("Failed to start")
	}

	mux := chi.NewRouter()
	mux.Mount("/", router.FromContainer(c))
	adapter = chiadapter.NewV2(mux)
}

func handler(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	return adapter.ProxyWithContextV2(ctx, req)
}

func main() {
	lambda.Start(handler)
}

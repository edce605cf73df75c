package main

import (
	"context"
	"net/http"
	"reflect"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLambdaInit(t *testing.T) {
	require.NotNil(t, forecastHandler)

	originalStartFn := lambdaStart
	defer func() { lambdaStart = originalStartFn }()

	var started interface{}
	lambdaStart = func(handler interface{}) {
		started = handler
	}

	main()

	require.NotNil(t, started)
	handlerType := reflect.TypeOf(started)
	require.Equal(t, reflect.Func, handlerType.Kind())
	assert.Equal(t, 2, handlerType.NumIn())
	assert.Equal(t, 2, handlerType.NumOut())
	assert.True(t, handlerType.In(0).Implements(reflect.TypeOf((*context.Context)(nil)).Elem()))
}

func TestHandleRequest_InvalidLocation(t *testing.T) {
	resp, err := handleRequest(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodPost,
		Body:       `{"location":" "}`,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

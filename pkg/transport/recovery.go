package transport

import (
	"context"
	"fmt"

	"github.com/schliff-dev/schliff/pkg/api"
)

// Recovery returns middleware that catches panics in the handler and
// converts them to classified errors. The server continues to accept new
// requests after a panic is recovered.
func Recovery() Middleware {
	return func(next TranslationCreator) TranslationCreator {
		return TranslationCreatorFunc(func(ctx context.Context, req *api.CreateTranslationRequest, w TranslationWriter) (retErr error) {
			defer func() {
				if r := recover(); r != nil {
					retErr = api.NewUnknownError(fmt.Errorf("panic: %v", r))
				}
			}()
			return next.CreateTranslation(ctx, req, w)
		})
	}
}

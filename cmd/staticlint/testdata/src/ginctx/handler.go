package ginctx

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
)

func Handler(ctx *gin.Context) {
	bad, cancel := context.WithTimeout(ctx, time.Second) // want `\*gin.Context passed to context.WithTimeout, use ctx.Request.Context\(\)`
	defer cancel()
	_ = bad

	good, cancelGood := context.WithTimeout(ctx.Request.Context(), time.Second)
	defer cancelGood()
	_ = good

	_ = context.WithValue(ctx, "k", "v") // want `\*gin.Context passed to context.WithValue`
}

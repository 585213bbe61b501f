package service

import (
	"context"
	"encoding/json"
	"fmt"

	"skilltracker_backend/pkg/cache"
	"skilltracker_backend/pkg/tracing"

	"go.opentelemetry.io/otel/codes"
)

// cachedReport 在 span 内读取缓存，未命中时计算并回写
func cachedReport[T any](ctx context.Context, c *cache.ReportCache, kind string, userID uint, build func(context.Context) (T, error)) (T, error) {
	ctx, span := tracing.StartReportSpan(ctx, kind, userID)
	defer span.End()

	v, err := cache.Remember(ctx, c, userID, kind, build)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return v, fmt.Errorf("%s: %w", kind, err)
	}
	return v, nil
}

// tracedReport 不走缓存的报表（会补建月度统计行）
func tracedReport[T any](ctx context.Context, kind string, userID uint, build func(context.Context) (T, error)) (T, error) {
	ctx, span := tracing.StartReportSpan(ctx, kind, userID)
	defer span.End()

	v, err := build(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return v, fmt.Errorf("%s: %w", kind, err)
	}
	return v, nil
}

// 宽表行没有反序列化方法，以原始 JSON 缓存
func rawJSON(v interface{}) (json.RawMessage, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(b), nil
}

package auth

import (
	"context"

	"job-assignment-service/internal/entity"
)

type partnerKeyType struct{}

var partnerKey partnerKeyType

func PartnerFromContext(ctx context.Context) (*entity.Partner, bool) {
	p, ok := ctx.Value(partnerKey).(*entity.Partner)
	return p, ok && p != nil
}

func NewContext(ctx context.Context, p *entity.Partner) context.Context {
	return context.WithValue(ctx, partnerKey, p)
}

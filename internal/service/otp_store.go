package service

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

type OTPStore interface {
	// Put replaces any pending code for phone.
	Put(ctx context.Context, phone, code string, ttl time.Duration) error
	// Verify consumes the code on success. A code can be verified once.
	Verify(ctx context.Context, phone, code string) (bool, error)
}

const maxOTPAttempts = 5

// redisOTPStore keeps a bcrypt hash of the code under a TTL plus a counter
// of failed attempts.
type redisOTPStore struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisOTPStore(rdb *redis.Client, prefix string) OTPStore {
	return &redisOTPStore{rdb: rdb, prefix: prefix}
}

func (s *redisOTPStore) codeKey(phone string) string     { return s.prefix + ":" + phone }
func (s *redisOTPStore) attemptsKey(phone string) string { return s.prefix + ":attempts:" + phone }

func (s *redisOTPStore) Put(ctx context.Context, phone, code string, ttl time.Duration) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.codeKey(phone), hash, ttl)
		pipe.Del(ctx, s.attemptsKey(phone))
		return nil
	})
	return err
}

func (s *redisOTPStore) Verify(ctx context.Context, phone, code string) (bool, error) {
	hash, err := s.rdb.Get(ctx, s.codeKey(phone)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}

	if bcrypt.CompareHashAndPassword(hash, []byte(code)) != nil {
		n, err := s.rdb.Incr(ctx, s.attemptsKey(phone)).Result()
		if err != nil {
			return false, err
		}
		if n == 1 {
			ttl, _ := s.rdb.TTL(ctx, s.codeKey(phone)).Result()
			if ttl > 0 {
				s.rdb.Expire(ctx, s.attemptsKey(phone), ttl)
			}
		}
		if n >= maxOTPAttempts {
			s.rdb.Del(ctx, s.codeKey(phone), s.attemptsKey(phone))
		}
		return false, nil
	}

	// Only the caller that actually deletes the key wins.
	deleted, err := s.rdb.Del(ctx, s.codeKey(phone)).Result()
	if err != nil {
		return false, err
	}
	s.rdb.Del(ctx, s.attemptsKey(phone))
	return deleted == 1, nil
}

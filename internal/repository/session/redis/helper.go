package redis

import (
	"context"
	"strconv"

	"github.com/redis/go-redis/v9"
)

func (r repo) executePipe(ctx context.Context, pipe redis.Pipeliner) error {
	cmds, err := pipe.Exec(ctx)
	if err != nil {
		for _, cmd := range cmds {
			if err := cmd.Err(); err != nil {
				return err
			}
		}

		return err
	}

	return nil
}

func (r repo) fieldToBool(field string) bool {
	return field == "1"
}

func (r repo) fieldToInt64(field string) int64 {
	i, _ := strconv.ParseInt(field, 10, 64)
	return i
}

// optionalBool returns nil when the field is absent from the hash.
func (r repo) optionalBool(fields map[string]string, key string) *bool {
	v, ok := fields[key]
	if !ok {
		return nil
	}

	b := r.fieldToBool(v)
	return &b
}

func (r repo) optionalInt64(fields map[string]string, key string) *int64 {
	v, ok := fields[key]
	if !ok {
		return nil
	}

	i := r.fieldToInt64(v)
	return &i
}

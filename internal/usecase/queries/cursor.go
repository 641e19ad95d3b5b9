package queries

import (
	"encoding/base64"
	"strconv"
	"strings"
	"time"

	"storefront-api/internal/pkg/errs"

	"github.com/google/uuid"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
	cursorVersionV1  = "v1"
)

var ErrInvalidCursor = errs.New("invalid cursor")

// Cursor is a keyset position in a (created_at DESC, id DESC) listing.
type Cursor struct {
	CreatedAt time.Time
	ID        uuid.UUID
}

// Encode uses microsecond precision to match PostgreSQL timestamps.
func (c Cursor) Encode() string {
	raw := cursorVersionV1 + ":" + strconv.FormatInt(c.CreatedAt.UnixMicro(), 10) + "_" + c.ID.String()
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

func DecodeCursor(s string) (*Cursor, error) {
	if s == "" {
		return nil, nil
	}

	decoded, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidCursor)
	}

	payload, ok := strings.CutPrefix(string(decoded), cursorVersionV1+":")
	if !ok {
		return nil, ErrInvalidCursor
	}

	micros, idPart, ok := strings.Cut(payload, "_")
	if !ok {
		return nil, ErrInvalidCursor
	}

	ts, err := strconv.ParseInt(micros, 10, 64)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidCursor)
	}

	id, err := uuid.Parse(idPart)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidCursor)
	}

	return &Cursor{CreatedAt: time.UnixMicro(ts), ID: id}, nil
}

func ValidateLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}

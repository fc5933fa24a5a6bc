package id

import (
	"crypto/md5"
	"io"
	"strconv"

	"github.com/gofrs/uuid"
)

// GenTraceID new random trace id
func GenTraceID() string {
	return uuid.Must(uuid.NewV4()).String()
}

// TraceIDFrom stable trace id from any text
func TraceIDFrom(text string) string {
	h := md5.New()
	io.WriteString(h, text)
	sum := h.Sum(nil)
	sum[6] = (sum[6] & 0x0f) | 0x30
	sum[8] = (sum[8] & 0x3f) | 0x80
	return uuid.FromBytesOrNil(sum).String()
}

// Normalize keeps a valid uuid as is, other client supplied ids are hashed into one
func Normalize(traceID string) string {
	if traceID == "" {
		return GenTraceID()
	}

	if u, err := uuid.FromString(traceID); err == nil {
		return u.String()
	}

	return TraceIDFrom(traceID)
}

// UUIDByName new uuid string from name
func UUIDByName(uuidStr, name string) string {
	ns, e := uuid.FromString(uuidStr)
	if e != nil {
		panic(e)
	}

	return uuid.NewV5(ns, name).String()
}

// Num2Str convert uint64 to number string
func Num2Str(id uint64) string {
	return strconv.FormatUint(id, 10)
}

// Str2Num convert number string to uint64
func Str2Num(idStr string) uint64 {
	v, _ := strconv.ParseUint(idStr, 10, 64)
	return v
}

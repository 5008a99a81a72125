package graphutil

import (
	"github.com/minio/highwayhash"
	"github.com/pkg/errors"
)

var fingerprintKey = []byte("PG0123456789ABCDEFPG0123456789AB")

// Fingerprint returns a stable 64-bit keyed hash of data: equal input always
// yields the same value, independent of PE id allocation order.
func Fingerprint(data []byte) (uint64, error) {
	h, err := highwayhash.New64(fingerprintKey)
	if err != nil {
		return 0, errors.Wrap(err, "graphutil: init highwayhash")
	}
	if _, err := h.Write(data); err != nil {
		return 0, errors.Wrap(err, "graphutil: hash write")
	}
	return h.Sum64(), nil
}

package cache

import (
	"bytes"
	"compress/gzip"

	"github.com/vmihailenco/msgpack"
)

// Snapshots of a few hundred items compress well, which matters for the redis backend.

func compressObj(obj interface{}) ([]byte, error) {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)

	if err := msgpack.NewEncoder(w).Encode(obj); err != nil {
		return nil, err
	}

	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func decompressObj(data []byte, obj interface{}) error {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return err
	}
	defer r.Close()

	return msgpack.NewDecoder(r).Decode(obj)
}

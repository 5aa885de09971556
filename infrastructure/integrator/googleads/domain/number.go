package domain

import (
	"bytes"
	"strconv"
)

// Number aceita tanto "123" quanto 123: a API serializa int64 como string
type Number string

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = ""
		return nil
	}

	if len(data) >= 2 && data[0] == '"' && data[len(data)-1] == '"' {
		unquoted, err := strconv.Unquote(string(data))
		if err != nil {
			return err
		}
		*n = Number(unquoted)
		return nil
	}

	*n = Number(data)
	return nil
}

func (n Number) String() string {
	return string(n)
}

func (n Number) Float64() float64 {
	if n == "" {
		return 0
	}
	f, err := strconv.ParseFloat(string(n), 64)
	if err != nil {
		return 0
	}
	return f
}

func (n Number) Int64() int64 {
	if n == "" {
		return 0
	}
	i, err := strconv.ParseInt(string(n), 10, 64)
	if err != nil {
		return int64(n.Float64())
	}
	return i
}

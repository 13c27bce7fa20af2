package model

import (
	"fmt"
)

// SourceScheme names a supported origin for source images.
type SourceScheme struct {
	s string
}

var (
	SchemeHTTP  = SourceScheme{"http"}
	SchemeHTTPS = SourceScheme{"https"}
	SchemeS3    = SourceScheme{"s3"}
)

func (t SourceScheme) String() string {
	return t.s
}

func MakeFromString(s string) (SourceScheme, error) {
	switch s {
	case SchemeHTTP.s:
		return SchemeHTTP, nil
	case SchemeHTTPS.s:
		return SchemeHTTPS, nil
	case SchemeS3.s:
		return SchemeS3, nil
	}

	return SourceScheme{}, fmt.Errorf("unknown scheme: %s", s)
}

func (t SourceScheme) IsRemote() bool {
	return t == SchemeHTTP || t == SchemeHTTPS
}

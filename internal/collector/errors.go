package collector

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// 错误分类：调用方用 errors.Is 判断属于哪一类
var (
	ErrConnectivity = errors.New("connectivity error")
	ErrTimeout      = errors.New("timeout error")
	ErrFormat       = errors.New("format error")
)

var errNoItems = errors.New("no items parsed, page structure may have changed")

// FetchError 带数据源和错误分类的采集错误，Err 保留原始原因
type FetchError struct {
	Source string
	Kind   error
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Source, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// classifyTransportError 超时单独归类，其余传输层失败一律视为连接错误
func classifyTransportError(source string, err error) error {
	kind := ErrConnectivity
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		kind = ErrTimeout
	}
	return &FetchError{Source: source, Kind: kind, Err: err}
}

func formatError(source string, err error) error {
	return &FetchError{Source: source, Kind: ErrFormat, Err: err}
}

package backend

import "fmt"

// DomainError 数学定义域错误：对数或分数次幂的参数不合法，结果不是实数
type DomainError struct {
	Op  string
	Arg float64
	Msg string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("math domain error in %s (arg=%g): %s", e.Op, e.Arg, e.Msg)
}

// ParseError 属性文件解析错误
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("parse properties: %v", e.Err)
	}
	return fmt.Sprintf("parse properties: line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// IOError 文件读写错误
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

package host

import (
	"io"
	"net/http"
	"time"

	"github.com/lemonberrylabs/losp/pkg/ast"
	"github.com/lemonberrylabs/losp/pkg/eval"
	"github.com/lemonberrylabs/losp/pkg/scope"
	"github.com/lemonberrylabs/losp/pkg/values"
)

// httpClient is overridable by tests so RegisterHTTPGet never makes a real
// network call in the test suite.
var httpClient = &http.Client{Timeout: 10 * time.Second}

// RegisterHTTPGet adds the "HTTP:GET" host operator: a one-arg (url string)
// extrinsic-returning operator that issues a real HTTP GET off the
// evaluator's goroutine and resumes via Async, demonstrating Extrinsic<T>
// and Async end-to-end.
func RegisterHTTPGet(e *eval.Evaluator) error {
	return e.RegisterOperator("HTTP:GET", httpGetHandler)
}

func httpGetHandler(e *eval.Evaluator, sc *scope.Scope, node ast.Node, accum []eval.Emission) eval.Result {
	args := eval.Positional(accum)
	if len(args) != 1 {
		return eval.ErrResult(values.NewArityErrorExactly(node, 1, len(args)))
	}
	if args[0].Type() != values.TypeString {
		return eval.ErrResult(values.NewTypeError(node, 0, "string", args[0].Type().String()))
	}
	url := args[0].AsString()

	proxy := eval.NewAsyncProxy()
	go func() {
		proxy.Complete(doHTTPGet(node, url))
	}()
	return eval.Result{Kind: eval.KindAsync, Proxy: proxy}
}

func doHTTPGet(node ast.Node, url string) eval.Result {
	resp, err := httpClient.Get(url)
	if err != nil {
		return eval.ErrResult(values.NewTypeErrorMsg(node, "HTTP:GET request failed: "+err.Error()))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return eval.ErrResult(values.NewTypeErrorMsg(node, "HTTP:GET reading body failed: "+err.Error()))
	}

	obj := values.NewObjectLiteral()
	obj.Set("status", values.NewInt(int32(resp.StatusCode)))
	obj.Set("body", values.NewString(string(body)))
	obj.Set("headers", values.NewExtrinsic("http.Header", resp.Header.Clone()))

	return eval.ValueResult(values.NewScriptable(obj))
}

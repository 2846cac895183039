package main

import (
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

const ginPkgPath = "github.com/gin-gonic/gin"

// derivedContextFuncs функции пакета context, создающие дочерний контекст.
// nolint:gochecknoglobals
var derivedContextFuncs = map[string]bool{
	"WithCancel":       true,
	"WithCancelCause":  true,
	"WithTimeout":      true,
	"WithTimeoutCause": true,
	"WithDeadline":     true,
	"WithValue":        true,
}

// GinContextParent сообщает о *gin.Context в роли родительского контекста.
// Done и Err у *gin.Context не отражают отмену запроса клиентом, нужно передавать ctx.Request.Context().
// nolint:gochecknoglobals
var GinContextParent = &analysis.Analyzer{
	Name:     "ginctxparent",
	Doc:      "check that *gin.Context is not used as a parent context",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      runGinContextParent,
}

func runGinContextParent(pass *analysis.Pass) (interface{}, error) {
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector) //nolint:forcetypeassert

	insp.Preorder([]ast.Node{(*ast.CallExpr)(nil)}, func(n ast.Node) {
		callExpr := n.(*ast.CallExpr) //nolint:forcetypeassert
		if len(callExpr.Args) == 0 {
			return
		}
		fn := calledFunc(pass, callExpr)
		if fn == nil || fn.Pkg() == nil || fn.Pkg().Path() != "context" || !derivedContextFuncs[fn.Name()] {
			return
		}
		if isGinContext(pass.TypesInfo.TypeOf(callExpr.Args[0])) {
			pass.Reportf(callExpr.Args[0].Pos(),
				"*gin.Context passed to context.%s, use ctx.Request.Context()", fn.Name())
		}
	})
	return nil, nil //nolint:nilnil
}

func isGinContext(t types.Type) bool {
	ptr, ok := t.(*types.Pointer)
	if !ok {
		return false
	}
	named, ok := ptr.Elem().(*types.Named)
	if !ok {
		return false
	}
	obj := named.Obj()
	return obj.Pkg() != nil && obj.Pkg().Path() == ginPkgPath && obj.Name() == "Context"
}

// calledFunc возвращает вызываемую функцию пакета, если вызов имеет вид pkg.Func(...).
func calledFunc(pass *analysis.Pass, callExpr *ast.CallExpr) *types.Func {
	selExpr, ok := callExpr.Fun.(*ast.SelectorExpr)
	if !ok {
		return nil
	}
	fn, ok := pass.TypesInfo.Uses[selExpr.Sel].(*types.Func)
	if !ok {
		return nil
	}
	return fn
}

func isPkgFunc(pass *analysis.Pass, callExpr *ast.CallExpr, pkgPath, name string) bool {
	fn := calledFunc(pass, callExpr)
	return fn != nil && fn.Pkg() != nil && fn.Pkg().Path() == pkgPath && fn.Name() == name
}

// Пакет compiler склеивает пять фаз в один чистый вызов: Compile не
// хранит состояние между вызовами и ничего не пишет, кроме журнала
// через logrus — весь ввод/вывод остаётся на совести вызывающего
// (CLI, REPL, тесты).
package compiler

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/go-wazc/wazc/internal/codegen"
	"github.com/go-wazc/wazc/internal/lexer"
	"github.com/go-wazc/wazc/internal/optimizer"
	"github.com/go-wazc/wazc/internal/parser"
	"github.com/go-wazc/wazc/internal/sema"
)

// Compile runs Lex -> Parse -> Check -> Optimize -> Emit over source
// and returns the generated module text. Errors from any phase are
// already *diag.Error values formatted as "<Kind> Error at line L: ...".
func Compile(source string) (string, error) {
	log := logrus.WithField("component", "compiler")

	start := time.Now()
	tokens, err := lexer.New().Lex(source)
	if err != nil {
		log.WithField("phase", "lex").WithError(err).Debug("lexing failed")
		return "", err
	}
	log.WithField("phase", "lex").WithField("tokens", len(tokens)).Debug("lexing done")

	prog, err := parser.New(tokens).ParseProgram()
	if err != nil {
		log.WithField("phase", "parse").WithError(err).Debug("parsing failed")
		return "", err
	}
	log.WithField("phase", "parse").WithField("functions", len(prog.Functions)).Debug("parsing done")

	prog, err = sema.New().Check(prog)
	if err != nil {
		log.WithField("phase", "semantic").WithError(err).Debug("semantic analysis failed")
		return "", err
	}
	log.WithField("phase", "semantic").Debug("semantic analysis done")

	optimizer.Optimize(prog)
	log.WithField("phase", "optimize").Debug("optimization done")

	out, err := codegen.Generate(prog)
	if err != nil {
		log.WithField("phase", "codegen").WithError(err).Debug("code generation failed")
		return "", err
	}
	log.WithField("phase", "codegen").WithField("elapsed", time.Since(start)).Debug("code generation done")

	return out, nil
}

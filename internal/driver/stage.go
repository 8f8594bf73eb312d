package driver

import "fmt"

// Stage определяет, до какого прохода доходит проверка.
type Stage string

const (
	StageTokenize Stage = "tokenize"
	StageSyntax   Stage = "syntax"
	StageSema     Stage = "sema"
	StageAll      Stage = "all"
)

// ParseStage converts a flag or manifest value into a Stage.
func ParseStage(s string) (Stage, error) {
	switch Stage(s) {
	case StageTokenize, StageSyntax, StageSema, StageAll:
		return Stage(s), nil
	case "":
		return StageAll, nil
	default:
		return "", fmt.Errorf("unknown stage %q (expected: tokenize|syntax|sema|all)", s)
	}
}

func (s Stage) parses() bool { return s != StageTokenize }

func (s Stage) runsSema() bool { return s == StageSema || s == StageAll || s == "" }

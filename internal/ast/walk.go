package ast

// Visitor receives every expression in depth-first, left-to-right order.
// Returning false skips the children of that node.
type Visitor func(Expr) bool

// WalkExpr visits e and its descendants.
func WalkExpr(e Expr, visit Visitor) {
	if e == nil || !visit(e) {
		return
	}
	switch n := e.(type) {
	case *BinaryExpr:
		WalkExpr(n.Left, visit)
		WalkExpr(n.Right, visit)
	case *CallExpr:
		WalkExpr(n.Arg, visit)
	case *GroupExpr:
		WalkExpr(n.Inner, visit)
	}
}

// StmtExpr returns the single expression owned by a statement, or nil for AVTEM.
func StmtExpr(s Stmt) Expr {
	switch n := s.(type) {
	case *DeclStmt:
		return n.Init
	case *AssignStmt:
		return n.Value
	case *PrintStmt:
		return n.Value
	default:
		return nil
	}
}

// Walk visits every expression of the program in source order.
func Walk(p *Program, visit Visitor) {
	if p == nil {
		return
	}
	for _, s := range p.Stmts {
		WalkExpr(StmtExpr(s), visit)
	}
}

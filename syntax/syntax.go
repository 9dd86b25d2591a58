// Package syntax defines the AST contract the external parser produces and
// the evaluator consumes: Markup nodes, Expr nodes, Literal values, and the
// parameter/argument/bind shapes used by function definitions and calls.
// Nothing here parses text; these are plain Go value types populated by a
// parser this module does not implement.
package syntax

// Position is a source location, attached to nodes that can raise an
// error so diagnostics carry a file/line/column.
type Position struct {
	File string
	Line int
	Col  int
}

func (p Position) File_() string { return p.File }
func (p Position) Line_() int    { return p.Line }
func (p Position) Pos() int      { return p.Col }

// MarkupKind tags which variant of the markup grammar a Markup node is.
type MarkupKind int

const (
	MText MarkupKind = iota
	MSpace
	MSoftBreak
	MNbsp
	MShy
	MEmDash
	MEnDash
	MEllipsis
	MQuote
	MParBreak
	MHardBreak
	MComment
	MEmph
	MStrong
	MBracketed
	MRawBlock
	MRawInline
	MHeading
	MEquation
	MFrac
	MAttach
	MGroup
	MAlignPoint
	MRef
	MBulletListItem
	MEnumListItem
	MDescListItem
	MUrl
	MCode
)

// Markup is one node of the input markup stream. Fields are
// populated according to Kind; unused fields for a given Kind are zero.
type Markup struct {
	Kind MarkupKind
	Pos  Position

	Text string // MText, MRawBlock/MRawInline text, MUrl text
	Char rune   // MQuote

	Children []Markup // MEmph, MStrong, MBracketed, MHeading, MEquation body

	Lang string // MRawBlock
	Level int   // MHeading

	Display bool // MEquation

	Num, Den *Markup // MFrac operands (one outer paren-group already stripped by the parser if present)

	Bottom, Top *Markup // MAttach
	Base        *Markup

	Open, Close *rune // MGroup delimiters

	Ident      string // MRef
	Supplement *Expr  // MRef suppExpr

	StartNum *int64 // MEnumListItem
	Term     *Markup // MDescListItem
	Descr    *Markup

	Code *Expr // MCode embedded expression
}

// LiteralKind tags the concrete shape of a Literal.
type LiteralKind int

const (
	LInteger LiteralKind = iota
	LFloat
	LBoolean
	LString
	LNone
	LAuto
	LNumeric
)

// NumericUnit tags the unit suffix of a LNumeric literal.
type NumericUnit int

const (
	UFr NumericUnit = iota
	UPercent
	UDeg
	URad
	UPt
	UEm
	UMm
	UCm
	UIn
)

// Literal is a parsed literal value, prior to evaluation into the value
// universe (values.Value).
type Literal struct {
	Kind LiteralKind

	Int    int64
	Float  float64
	Bool   bool
	Str    string
	Num    float64
	Unit   NumericUnit
}

// ExprKind tags the concrete variant of an Expr node.
type ExprKind int

const (
	ELiteral ExprKind = iota
	EArray
	EDict
	ENot
	EAnd
	EOr
	EAdd
	ESub
	EMul
	EDiv
	EPow
	ENeg
	EEq
	ENeq
	ELt
	ELe
	EGt
	EGe
	EIn
	ELet
	ELetFunc
	EAssign
	EIdent
	EFieldAccess
	EFuncCall
	EIf
	EWhile
	EFor
	EReturn
	EContinue
	EBreak
	EBlockCode
	EBlockContent
	ESet
	EShow
	EImport
	EInclude
)

// DictKV is one key/value pair of an EDict expression, evaluated in
// source order.
type DictKV struct {
	Key   string
	Value *Expr
}

// BindKind tags whether a Let binds a single identifier or destructures.
type BindKind int

const (
	BindBasic BindKind = iota
	BindDestructuring
)

// DestructPartKind says what one component of a destructuring bind is: a
// plain identifier, a sink (`..rest`), or a skipped position.
type DestructPartKind int

const (
	DestructIdent DestructPartKind = iota
	DestructSink
	DestructSkip
)

type DestructPart struct {
	Kind DestructPartKind
	Name string
}

// Bind describes the left-hand side of a Let.
type Bind struct {
	Kind  BindKind
	Ident string         // BindBasic; empty means anonymous (`let _ = e`)
	Parts []DestructPart // BindDestructuring
}

// ParamKind tags which of the five function-parameter shapes a Param is.
type ParamKind int

const (
	ParamNormal ParamKind = iota
	ParamDefault
	ParamDestructuring
	ParamSink
	ParamSkip
)

// Param is one parameter of a LetFunc's parameter list, in source order
// (left params, an optional sink, right params).
type Param struct {
	Kind  ParamKind
	Ident string
	Def   *Expr          // ParamDefault
	Parts []DestructPart // ParamDestructuring
}

// ImportSelectorKind tags which import-binding form an Import expression
// uses.
type ImportSelectorKind int

const (
	ImportAll ImportSelectorKind = iota
	ImportSome
	ImportNone
)

// ImportSelector is the `: a, b` / `: *` / (absent) suffix of an import.
type ImportSelector struct {
	Kind  ImportSelectorKind
	Names []string // ImportSome
}

// IfClause is one `condition => branch` pair of an If expression.
type IfClause struct {
	Cond   *Expr
	Branch *Expr
}

// Expr is one node of the embedded expression grammar.
// Fields are populated according to Kind.
type Expr struct {
	Kind ExprKind
	Pos  Position

	Literal *Literal // ELiteral

	Elements []*Expr  // EArray
	Pairs    []DictKV // EDict

	Lhs, Rhs *Expr // binary ops, EAssign
	Operand  *Expr // ENot, ENeg

	Bind  *Bind // ELet
	Value *Expr // ELet, EReturn (optional)

	FuncName string   // ELetFunc
	Params   []Param  // ELetFunc
	Body     *Expr    // ELetFunc, EIf branch storage unused (see Clauses), EWhile/EFor body, EShow

	Ident string // EIdent

	Field  string // EFieldAccess
	Target *Expr  // EFieldAccess base

	Callee *Expr   // EFuncCall
	Args   []*Expr // EFuncCall positional
	Named  []DictKV // EFuncCall named

	Clauses []IfClause // EIf

	Cond *Expr // EWhile condition

	ForBind   *Bind // EFor
	ForSource *Expr

	Block []*Expr // EBlockCode statements, EBlockContent markup-as-content handled via ContentBody

	ContentBody []Markup // EBlockContent

	Selector *Expr // EShow selector (optional), ESet target expr reuse via Callee

	SetArgs []*Expr   // ESet positional args
	SetNamed []DictKV // ESet named args

	ImportPath     *Expr          // EImport/EInclude
	ImportSelector ImportSelector // EImport
}

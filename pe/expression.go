package pe

// ExpressionKind enumerates the ~30 expression categories the PE model
// normalizes Java-family expression syntax into.
type ExpressionKind string

const (
	ExprArrayAccess                ExpressionKind = "ArrayAccess"
	ExprArrayCreation              ExpressionKind = "ArrayCreation"
	ExprArrayInitializer           ExpressionKind = "ArrayInitializer"
	ExprAssignment                 ExpressionKind = "Assignment"
	ExprBoolean                    ExpressionKind = "Boolean"
	ExprCast                       ExpressionKind = "Cast"
	ExprCharacter                  ExpressionKind = "Character"
	ExprClassInstanceCreation      ExpressionKind = "ClassInstanceCreation"
	ExprConstructorInvocation      ExpressionKind = "ConstructorInvocation"
	ExprFieldAccess                ExpressionKind = "FieldAccess"
	ExprInfix                      ExpressionKind = "Infix"
	ExprInstanceof                 ExpressionKind = "Instanceof"
	ExprMethodInvocation           ExpressionKind = "MethodInvocation"
	ExprNull                       ExpressionKind = "Null"
	ExprNumber                     ExpressionKind = "Number"
	ExprParenthesized              ExpressionKind = "Parenthesized"
	ExprPostfix                    ExpressionKind = "Postfix"
	ExprPrefix                     ExpressionKind = "Prefix"
	ExprQualifiedName              ExpressionKind = "QualifiedName"
	ExprSimpleName                 ExpressionKind = "SimpleName"
	ExprString                     ExpressionKind = "String"
	ExprSuperConstructorInvocation ExpressionKind = "SuperConstructorInvocation"
	ExprSuperFieldAccess           ExpressionKind = "SuperFieldAccess"
	ExprSuperMethodInvocation      ExpressionKind = "SuperMethodInvocation"
	ExprThis                       ExpressionKind = "This"
	ExprTrinomial                  ExpressionKind = "Trinomial"
	ExprTypeLiteral                ExpressionKind = "TypeLiteral"
	ExprVariableDeclarationExpr    ExpressionKind = "VariableDeclarationExpression"
	ExprVariableDeclarationFrag    ExpressionKind = "VariableDeclarationFragment"
	ExprMethodEnter                ExpressionKind = "MethodEnter"
)

// Expression is an expression-shaped PE. Different ExprKind values use a
// different subset of the fields below, each category following its own
// layout convention (e.g. Assignment uses Children[0]/[1] as lhs/rhs,
// MethodInvocation uses Qualifier as the receiver and Children[0] as the
// method-name SimpleName with remaining children as arguments).
type Expression struct {
	Base
	ExprKind ExpressionKind

	// OwnerScope is the lexical Scope this expression was built in; used by
	// the def/use analyzer to resolve variable references. Stamped by the
	// builder at construction time, mirroring Statement.OwnerScope.
	OwnerScope *Scope

	// Children holds the ordered child PEs; meaning depends on ExprKind.
	Children []Element

	// Qualifier is the optional receiver/qualifier PE (FieldAccess,
	// QualifiedName, MethodInvocation).
	Qualifier Element

	// ElementType carries an explicit type operand (Cast, Instanceof,
	// ClassInstanceCreation, ArrayCreation, TypeLiteral).
	ElementType *Type

	// Op carries the operator token (Assignment, Infix, Postfix, Prefix).
	Op *Operator

	// VarDecl carries the declared Variable (VariableDeclarationFragment).
	VarDecl *Variable

	// AnonymousBody carries an anonymous class body (ClassInstanceCreation).
	AnonymousBody *Class

	// ResolvedAPI is the best-effort fully-qualified method name for a
	// MethodInvocation, or empty if the front-end could not resolve it.
	ResolvedAPI string
}

// NewExpression allocates an Expression PE of the given category.
func NewExpression(counter *IDCounter, astNode interface{}, kind ExpressionKind) *Expression {
	return &Expression{Base: newBase(counter, KindExpression, astNode), ExprKind: kind}
}

// NewMethodEnter builds the synthetic method-enter expression PE. Per the
// "Method-enter PE rendering" interface contract, its text is "Enter" and
// its source span equals the method's span.
func NewMethodEnter(counter *IDCounter, method *Method) *Expression {
	e := NewExpression(counter, nil, ExprMethodEnter)
	e.SetText("Enter")
	e.SetLines(method.StartLine(), method.EndLine())
	return e
}

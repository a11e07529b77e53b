package tsast

// Kind is the grammar type of a node, as named by the parser
// ("if_statement", "string", "," ...). Anonymous tokens use their literal text.
type Kind string

// Node kinds used by the rule set.
const (
	KindProgram        Kind = "program"
	KindError          Kind = "ERROR"
	KindComment        Kind = "comment"
	KindStatementBlock Kind = "statement_block"
	KindClassBody      Kind = "class_body"

	KindExpressionStatement Kind = "expression_statement"
	KindIfStatement         Kind = "if_statement"
	KindElseClause          Kind = "else_clause"
	KindForStatement        Kind = "for_statement"
	KindForInStatement      Kind = "for_in_statement"
	KindWhileStatement      Kind = "while_statement"
	KindDoStatement         Kind = "do_statement"
	KindReturnStatement     Kind = "return_statement"
	KindThrowStatement      Kind = "throw_statement"
	KindBreakStatement      Kind = "break_statement"
	KindContinueStatement   Kind = "continue_statement"
	KindDebuggerStatement   Kind = "debugger_statement"
	KindEmptyStatement      Kind = "empty_statement"
	KindImportStatement     Kind = "import_statement"
	KindExportStatement     Kind = "export_statement"
	KindCatchClause         Kind = "catch_clause"
	KindSwitchStatement     Kind = "switch_statement"
	KindLabeledStatement    Kind = "labeled_statement"

	KindVariableDeclaration Kind = "variable_declaration"
	KindLexicalDeclaration  Kind = "lexical_declaration"
	KindVariableDeclarator  Kind = "variable_declarator"
	KindTypeAlias           Kind = "type_alias_declaration"
	KindInterface           Kind = "interface_declaration"
	KindEnum                Kind = "enum_declaration"

	KindFunctionDeclaration  Kind = "function_declaration"
	KindGeneratorDeclaration Kind = "generator_function_declaration"
	KindFunctionExpression   Kind = "function_expression"
	KindFunction             Kind = "function"
	KindGeneratorFunction    Kind = "generator_function"
	KindArrowFunction        Kind = "arrow_function"
	KindMethodDefinition     Kind = "method_definition"
	KindClassDeclaration     Kind = "class_declaration"
	KindAbstractClass        Kind = "abstract_class_declaration"
	KindClass                Kind = "class"
	KindFieldDefinition      Kind = "public_field_definition"

	KindString             Kind = "string"
	KindStringFragment     Kind = "string_fragment"
	KindEscapeSequence     Kind = "escape_sequence"
	KindTemplateString     Kind = "template_string"
	KindTemplateSubstitute Kind = "template_substitution"
	KindRegex              Kind = "regex"
	KindNumber             Kind = "number"

	KindArray         Kind = "array"
	KindObject        Kind = "object"
	KindArguments     Kind = "arguments"
	KindParameters    Kind = "formal_parameters"
	KindNamedImports  Kind = "named_imports"
	KindExportClause  Kind = "export_clause"
	KindArrayPattern  Kind = "array_pattern"
	KindObjectPattern Kind = "object_pattern"
	KindTypeArguments Kind = "type_arguments"
	KindTypeParams    Kind = "type_parameters"
	KindTupleType     Kind = "tuple_type"
	KindEnumBody      Kind = "enum_body"
	KindObjectType    Kind = "object_type"
	KindInterfaceBody Kind = "interface_body"

	KindPropertySignature Kind = "property_signature"
	KindMethodSignature   Kind = "method_signature"
	KindPair              Kind = "pair"
	KindSpreadElement     Kind = "spread_element"
	KindLiteralType       Kind = "literal_type"
	KindAmbientDecl       Kind = "ambient_declaration"
	KindJSXAttribute      Kind = "jsx_attribute"
	KindNull              Kind = "null"
	KindUndefined         Kind = "undefined"

	KindIdentifier              Kind = "identifier"
	KindPropertyIdentifier      Kind = "property_identifier"
	KindShorthandProperty       Kind = "shorthand_property_identifier"
	KindShorthandPropertyPatten Kind = "shorthand_property_identifier_pattern"
	KindTypeIdentifier          Kind = "type_identifier"
	KindPairPattern             Kind = "pair_pattern"
	KindAssignmentPattern       Kind = "assignment_pattern"
	KindObjectAssignmentPattern Kind = "object_assignment_pattern"
	KindRestPattern             Kind = "rest_pattern"
	KindRequiredParameter       Kind = "required_parameter"
	KindOptionalParameter       Kind = "optional_parameter"

	KindBinaryExpression     Kind = "binary_expression"
	KindAssignmentExpression Kind = "assignment_expression"
	KindAugmentedAssignment  Kind = "augmented_assignment_expression"
	KindUpdateExpression     Kind = "update_expression"
	KindCallExpression       Kind = "call_expression"
	KindMemberExpression     Kind = "member_expression"

	KindImportClause    Kind = "import_clause"
	KindNamespaceImport Kind = "namespace_import"
	KindImportSpecifier Kind = "import_specifier"
)

// IsFunctionLike reports whether nodes of this kind open a function scope.
func (k Kind) IsFunctionLike() bool {
	switch k {
	case KindFunctionDeclaration, KindGeneratorDeclaration, KindFunctionExpression,
		KindFunction, KindGeneratorFunction, KindArrowFunction, KindMethodDefinition:
		return true
	default:
		return false
	}
}

// IsStringLike reports whether nodes of this kind hold literal text.
func (k Kind) IsStringLike() bool {
	return k == KindString || k == KindTemplateString || k == KindRegex
}

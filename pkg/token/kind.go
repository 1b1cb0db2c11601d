package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Empty marks a cleared slot. Cleared tokens keep their position in the
	// stream until ClearEmptyTokens compacts it.
	Empty Kind = iota
	InlineHTML
	OpenTag
	OpenTagWithEcho
	// CloseTag is the end-of-code marker "?>".
	CloseTag
	Whitespace
	Comment
	DocComment
	Variable
	// String is an identifier (class, function or namespace segment name).
	String
	NsSeparator
	Number
	ConstantString
	Heredoc

	Use
	// UseLambda is the "use" of a closure binding list: function () use ($x) {}.
	UseLambda
	Namespace
	Class
	Interface
	Trait
	// Enum is the contextual "enum" keyword; the lexer emits String and the
	// stream reclassifies it.
	Enum
	Function
	Fn
	Const
	As

	Semicolon
	Comma
	LBrace
	RBrace
	GroupImportBraceOpen
	GroupImportBraceClose
	LParen
	RParen
	LBracket
	RBracket
	DoubleColon
	ObjectOperator
	// Punct is any other single operator or punctuation byte.
	Punct
)

var kindNames = [...]string{
	Empty:                 "Empty",
	InlineHTML:            "InlineHTML",
	OpenTag:               "OpenTag",
	OpenTagWithEcho:       "OpenTagWithEcho",
	CloseTag:              "CloseTag",
	Whitespace:            "Whitespace",
	Comment:               "Comment",
	DocComment:            "DocComment",
	Variable:              "Variable",
	String:                "String",
	NsSeparator:           "NsSeparator",
	Number:                "Number",
	ConstantString:        "ConstantString",
	Heredoc:               "Heredoc",
	Use:                   "Use",
	UseLambda:             "UseLambda",
	Namespace:             "Namespace",
	Class:                 "Class",
	Interface:             "Interface",
	Trait:                 "Trait",
	Enum:                  "Enum",
	Function:              "Function",
	Fn:                    "Fn",
	Const:                 "Const",
	As:                    "As",
	Semicolon:             "Semicolon",
	Comma:                 "Comma",
	LBrace:                "LBrace",
	RBrace:                "RBrace",
	GroupImportBraceOpen:  "GroupImportBraceOpen",
	GroupImportBraceClose: "GroupImportBraceClose",
	LParen:                "LParen",
	RParen:                "RParen",
	LBracket:              "LBracket",
	RBracket:              "RBracket",
	DoubleColon:           "DoubleColon",
	ObjectOperator:        "ObjectOperator",
	Punct:                 "Punct",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

// BlockType identifies a pair of matching open/close delimiters.
type BlockType uint8

const (
	BlockCurly BlockType = iota
	BlockParen
	BlockBracket
	BlockGroupImport
)

// Delimiters returns the open and close kinds of the block.
func (b BlockType) Delimiters() (open, close Kind) {
	switch b {
	case BlockParen:
		return LParen, RParen
	case BlockBracket:
		return LBracket, RBracket
	case BlockGroupImport:
		return GroupImportBraceOpen, GroupImportBraceClose
	default:
		return LBrace, RBrace
	}
}

func (b BlockType) String() string {
	switch b {
	case BlockParen:
		return "paren"
	case BlockBracket:
		return "bracket"
	case BlockGroupImport:
		return "group import brace"
	default:
		return "curly brace"
	}
}

package message

import (
	"fmt"
	"strings"

	verity "github.com/verity-go/verity"
)

// Translator renders a single flattened error node into display text.
type Translator interface {
	Message(n verity.ErrorNode) string
}

// Message is one rendered failure line.
type Message struct {
	Path string
	Text string
}

func (m Message) String() string { return m.Path + ": " + m.Text }

// Render flattens the failure tree and renders one message per node, in the
// validator's deterministic order.
func Render(n verity.ErrorNode) []Message {
	if n == nil {
		return nil
	}
	flat := verity.Flatten(n)
	out := make([]Message, 0, len(flat))
	for _, f := range flat {
		out = append(out, Message{Path: pathOf(f), Text: T(f)})
	}
	return out
}

// Lines renders "path: text" lines, ready for logs or API payloads.
func Lines(n verity.ErrorNode) []string {
	msgs := Render(n)
	out := make([]string, len(msgs))
	for i, m := range msgs {
		out[i] = m.String()
	}
	return out
}

func pathOf(n verity.ErrorNode) string {
	switch t := n.(type) {
	case *verity.Leaf:
		return t.Path.Pointer()
	case *verity.OrError:
		return t.Path.Pointer()
	case *verity.CastError:
		return pathOf(firstNode(t.Inner))
	case *verity.RuleError:
		return t.Path.Pointer()
	case *verity.Group:
		return pathOf(firstNode(t))
	default:
		return "/"
	}
}

func firstNode(n verity.ErrorNode) verity.ErrorNode {
	if g, ok := n.(*verity.Group); ok && len(g.Nodes) > 0 {
		return g.Nodes[0]
	}
	return n
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(n verity.ErrorNode) string {
	switch node := n.(type) {
	case *verity.Leaf:
		return t.leaf(node)
	case *verity.OrError:
		sep := " or "
		if t.lang == "ja" {
			sep = " または "
		}
		return t.side(node.Left) + sep + t.side(node.Right)
	case *verity.CastError:
		return t.Message(firstNode(node.Inner))
	case *verity.RuleError:
		return node.Text
	case *verity.Group:
		return t.side(node)
	default:
		return n.Error()
	}
}

func (t dictTranslator) side(n verity.ErrorNode) string {
	if g, ok := n.(*verity.Group); ok {
		parts := make([]string, len(g.Nodes))
		for i, child := range g.Nodes {
			parts[i] = t.Message(child)
		}
		return strings.Join(parts, "; ")
	}
	return t.Message(n)
}

func (t dictTranslator) leaf(n *verity.Leaf) string {
	arg := func(i int) any {
		if i < len(n.Args) {
			return n.Args[i]
		}
		return nil
	}
	if t.lang == "ja" {
		switch n.Predicate {
		case verity.PredType:
			return fmt.Sprintf("%v 型である必要があります", arg(0))
		case verity.PredFilled:
			return "空にできません"
		case verity.PredEmpty:
			return "空である必要があります"
		case verity.PredHasKey:
			return fmt.Sprintf("キー %v がありません", arg(0))
		case verity.PredEql:
			return fmt.Sprintf("%v と等しい必要があります", arg(0))
		case verity.PredNotEql:
			return fmt.Sprintf("%v と等しくない必要があります", arg(0))
		case verity.PredGt:
			return fmt.Sprintf("%v より大きい必要があります", arg(0))
		case verity.PredGtEq:
			return fmt.Sprintf("%v 以上である必要があります", arg(0))
		case verity.PredLt:
			return fmt.Sprintf("%v より小さい必要があります", arg(0))
		case verity.PredLtEq:
			return fmt.Sprintf("%v 以下である必要があります", arg(0))
		case verity.PredSize:
			return fmt.Sprintf("サイズは %v である必要があります", arg(0))
		case verity.PredMaxSize:
			return fmt.Sprintf("サイズは %v 以下である必要があります", arg(0))
		case verity.PredMinSize:
			return fmt.Sprintf("サイズは %v 以上である必要があります", arg(0))
		case verity.PredIncludes:
			return fmt.Sprintf("%v を含む必要があります", arg(0))
		case verity.PredExcludes:
			return fmt.Sprintf("%v を含んではいけません", arg(0))
		case verity.PredMatch:
			return "形式が不正です"
		case verity.PredEven:
			return "偶数である必要があります"
		case verity.PredOdd:
			return "奇数である必要があります"
		case verity.PredUUID:
			return "UUID 形式である必要があります"
		}
		return n.Predicate + " を満たしていません"
	}
	switch n.Predicate {
	case verity.PredType:
		return fmt.Sprintf("must be %v", arg(0))
	case verity.PredFilled:
		return "must be filled"
	case verity.PredEmpty:
		return "must be empty"
	case verity.PredHasKey:
		return fmt.Sprintf("key %v is missing", arg(0))
	case verity.PredEql:
		return fmt.Sprintf("must be equal to %v", arg(0))
	case verity.PredNotEql:
		return fmt.Sprintf("must not be equal to %v", arg(0))
	case verity.PredGt:
		return fmt.Sprintf("must be greater than %v", arg(0))
	case verity.PredGtEq:
		return fmt.Sprintf("must be greater than or equal to %v", arg(0))
	case verity.PredLt:
		return fmt.Sprintf("must be less than %v", arg(0))
	case verity.PredLtEq:
		return fmt.Sprintf("must be less than or equal to %v", arg(0))
	case verity.PredSize:
		return fmt.Sprintf("size must be exactly %v", arg(0))
	case verity.PredMaxSize:
		return fmt.Sprintf("size cannot be greater than %v", arg(0))
	case verity.PredMinSize:
		return fmt.Sprintf("size cannot be less than %v", arg(0))
	case verity.PredIncludes:
		return fmt.Sprintf("must include %v", arg(0))
	case verity.PredExcludes:
		return fmt.Sprintf("must not include %v", arg(0))
	case verity.PredMatch:
		return "is in invalid format"
	case verity.PredEven:
		return "must be even"
	case verity.PredOdd:
		return "must be odd"
	case verity.PredUUID:
		return "must be a valid UUID"
	}
	return n.Predicate + " failed"
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T renders one node using the current Translator.
func T(n verity.ErrorNode) string { return currentTranslator.Message(n) }

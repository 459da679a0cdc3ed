package compiler

import "fmt"

// Validate checks a token's operand shapes against the instruction it will
// lower to, returning a non-empty message describing the violation. A token
// with a Placeholder operand (a macro body line) is not checked here; its
// arguments are checked against the macro's formal types at expansion.
func (t Token) Validate() string {
	if t.P1.Kind == ParamPlaceholder || t.P2.Kind == ParamPlaceholder || t.P3.Kind == ParamPlaceholder {
		return ""
	}
	switch t.Kind {
	case TokAdd:
		return validateAdd(t.P1, t.P2)
	case TokSub:
		return validateRR("Sub", t.P1, t.P2)
	case TokSubr:
		return validateRR("Subr", t.P1, t.P2)
	case TokOr:
		return validateRR("Or", t.P1, t.P2)
	case TokXor:
		return validateRR("Xor", t.P1, t.P2)
	case TokAnd:
		return validateRR("And", t.P1, t.P2)
	case TokSet:
		return validateSet(t.P1, t.P2)
	case TokShr:
		return validateR("Shr", t.P1)
	case TokShl:
		return validateR("Shl", t.P1)
	case TokWaitForKey:
		return validateR("Wait for key", t.P1)
	case TokRand:
		return validateRN("Rand", t.P1, t.P2)
	case TokDraw:
		return validateRRN("Draw", t.P1, t.P2, t.P3)
	case TokStoreReg:
		return validateR("Store regs", t.P1)
	case TokLoadReg:
		return validateR("Load regs", t.P1)
	case TokBcd:
		return validateR("BCD", t.P1)
	case TokIf:
		return t.Inner.Validate()
	case TokGoto:
		return validateA("Call", t.P1)
	case TokGotoOffset:
		return validateAR("Goto offset", t.P1, t.P2)
	case TokDigit:
		return validateR("Digit", t.P1)
	case TokAscii:
		return validateR("Ascii", t.P1)
	case TokCall:
		return validateA("Call", t.P1)
	default:
		return ""
	}
}

func isAddrLike(p Param) bool {
	switch p.Kind {
	case ParamAddr, ParamLabel, ParamData, ParamUnknown:
		return true
	default:
		return false
	}
}

func validateAR(op string, p1, p2 Param) string {
	if isAddrLike(p1) && p2.Kind == ParamReg {
		return ""
	}
	return fmt.Sprintf("%s only supports A,R  L,R  D,R", op)
}

func validateA(op string, p1 Param) string {
	if isAddrLike(p1) {
		return ""
	}
	return fmt.Sprintf("%s only supports A  L", op)
}

func validateR(op string, p1 Param) string {
	if p1.Kind == ParamReg {
		return ""
	}
	return fmt.Sprintf("%s only supports R", op)
}

func validateRN(op string, p1, p2 Param) string {
	if p1.Kind == ParamReg && p2.Kind == ParamNum {
		return ""
	}
	return fmt.Sprintf("%s only supports R,N", op)
}

func validateRRN(op string, p1, p2, p3 Param) string {
	if p1.Kind == ParamReg && p2.Kind == ParamReg && p3.Kind == ParamNum {
		return ""
	}
	return fmt.Sprintf("%s only supports R,R,N", op)
}

func validateRR(op string, p1, p2 Param) string {
	if p1.Kind == ParamReg && p2.Kind == ParamReg {
		return ""
	}
	return fmt.Sprintf("%s only supports R,R", op)
}

func validateSet(p1, p2 Param) string {
	switch {
	case p1.Kind == ParamReg && p2.Kind == ParamReg:
		return ""
	case p1.Kind == ParamReg && p2.Kind == ParamNum:
		return ""
	case p1.Kind == ParamMemReg && p2.Kind == ParamLabel:
		return ""
	case p1.Kind == ParamMemReg && p2.Kind == ParamAddr:
		return ""
	case p1.Kind == ParamMemReg && p2.Kind == ParamData:
		return ""
	default:
		return "Assign only supports R,R  R,N  I,L  I,A  I,D"
	}
}

func validateAdd(p1, p2 Param) string {
	switch {
	case p1.Kind == ParamReg && p2.Kind == ParamReg:
		return ""
	case p1.Kind == ParamReg && p2.Kind == ParamNum:
		return ""
	case p1.Kind == ParamMemReg && p2.Kind == ParamReg:
		return ""
	default:
		return "Add only supports R,R  R,N  I,R"
	}
}

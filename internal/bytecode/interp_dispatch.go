package bytecode

// execute dispatches one decoded instruction to its handler (spec 4.5).
// inst is a pointer to dispatch()'s own local so that Jump/If/
// WaitForFrame/WaitForFrame2/DefineFunction/DefineFunction2/Try can
// overwrite nextPC in place; the other handlers that take *instruction
// only read its payload. Every handler other than Throw and Try
// declares its arity by how many times it calls f.pop and is void: the
// stack-underrun and coercion-failure repair paths (spec 4.5/4.6)
// already live inside pop/toNumber/toString/toBool, so there is nothing
// left for the switch itself to recover from except the two kinds
// dispatch() already special-cases (CallStackOverflow,
// ActionLimitException, both reached indirectly through
// callValue/construct/Run) and ActionThrow's ThrownValue, which an
// enclosing Try catches or Run returns to its caller.
func (f *frame) execute(inst *instruction) error {
	switch inst.op {

	// --- timeline / movieclip ---
	case ActionNextFrame:
		f.opNextFrame()
	case ActionPrevFrame:
		f.opPrevFrame()
	case ActionPlay:
		f.opPlay()
	case ActionStop:
		f.opStop()
	case ActionToggleQuality:
		f.opToggleQuality()
	case ActionStopSounds:
		f.opStopSounds()

	// --- arithmetic ---
	case ActionAdd:
		f.opAdd()
	case ActionSubtract:
		f.opSubtract()
	case ActionMultiply:
		f.opMultiply()
	case ActionDivide:
		f.opDivide()

	// --- comparison and logic ---
	case ActionEquals:
		f.opEquals()
	case ActionLess:
		f.opLess()
	case ActionAnd:
		f.opAnd()
	case ActionOr:
		f.opOr()
	case ActionNot:
		f.opNot()

	// --- strings ---
	case ActionStringEquals:
		f.opStringEquals()
	case ActionStringLength:
		f.opStringLength()
	case ActionStringExtract:
		f.opStringExtract()

	// --- stack ---
	case ActionPop:
		f.opPop()

	// --- conversion ---
	case ActionToInteger:
		f.opToInteger()

	// --- variables and members ---
	case ActionGetVariable:
		f.opGetVariable()
	case ActionSetVariable:
		f.opSetVariable()

	// --- target / drag ---
	case ActionSetTarget2:
		f.opSetTarget2()
	case ActionStringAdd:
		f.opStringAdd()
	case ActionGetProperty:
		f.opGetProperty()
	case ActionSetProperty:
		f.opSetProperty()
	case ActionCloneSprite:
		f.opCloneSprite()
	case ActionRemoveSprite:
		f.opRemoveSprite()
	case ActionTrace:
		f.opTrace()
	case ActionStartDrag:
		f.opStartDrag()
	case ActionEndDrag:
		f.opEndDrag()
	case ActionStringLess:
		f.opStringLess()

	// --- exceptions ---
	case ActionThrow:
		return f.opThrow()
	case ActionCastOp:
		f.opCastOp()
	case ActionImplementsOp:
		f.opImplementsOp()

	// --- more conversions / builtins ---
	case ActionRandomNumber:
		f.opRandomNumber()
	case ActionMBStringLength:
		f.opMBStringLength()
	case ActionCharToAscii:
		f.opCharToAscii()
	case ActionAsciiToChar:
		f.opAsciiToChar()
	case ActionGetTime:
		f.opGetTime()
	case ActionMBStringExtract:
		f.opMBStringExtract()
	case ActionMBCharToAscii:
		f.opMBCharToAscii()
	case ActionMBAsciiToChar:
		f.opMBAsciiToChar()

	// --- locals / delete / call / return ---
	case ActionDelete:
		f.opDelete()
	case ActionDelete2:
		f.opDelete2()
	case ActionDefineLocal:
		f.opDefineLocal()
	case ActionCallFunction:
		f.opCallFunction()
	case ActionReturn:
		f.opReturn()
	case ActionModulo:
		f.opModulo()
	case ActionNewObject:
		f.opNewObject()
	case ActionDefineLocal2:
		f.opDefineLocal2()
	case ActionGetMember:
		f.opGetMember()

	// --- objects / arrays ---
	case ActionInitArray:
		f.opInitArray()
	case ActionInitObject:
		f.opInitObject()
	case ActionTypeOf:
		f.opTypeOf()
	case ActionTargetPath:
		f.opTargetPath()
	case ActionEnumerate:
		f.opEnumerate()
	case ActionAdd2:
		f.opAdd2()
	case ActionLess2:
		f.opLess2()
	case ActionEquals2:
		f.opEquals2()
	case ActionToNumber:
		f.opToNumber()
	case ActionToString:
		f.opToString()
	case ActionPushDuplicate:
		f.opPushDuplicate()
	case ActionStackSwap:
		f.opStackSwap()
	case ActionSetMember:
		f.opSetMember()
	case ActionIncrement:
		f.opIncrement()
	case ActionDecrement:
		f.opDecrement()
	case ActionCallMethod:
		f.opCallMethod()
	case ActionNewMethod:
		f.opNewMethod()
	case ActionInstanceOf:
		f.opInstanceOf()
	case ActionEnumerate2:
		f.opEnumerate2()

	// --- bitwise / strict equality / extends ---
	case ActionBitAnd:
		f.opBitAnd()
	case ActionBitOr:
		f.opBitOr()
	case ActionBitXor:
		f.opBitXor()
	case ActionBitLShift:
		f.opBitLShift()
	case ActionBitRShift:
		f.opBitRShift()
	case ActionBitURShift:
		f.opBitURShift()
	case ActionStrictEquals:
		f.opStrictEquals()
	case ActionGreater:
		f.opGreater()
	case ActionStringGreater:
		f.opStringGreater()
	case ActionExtends:
		f.opExtends()

	// --- payload-bearing opcodes ---
	case ActionGotoFrame:
		f.opGotoFrame(inst)
	case ActionGetURL:
		f.opGetURL(inst)
	case ActionStoreRegister:
		f.opStoreRegister(inst)
	case ActionConstantPool:
		f.opConstantPool(inst)
	case ActionWaitForFrame:
		f.opWaitForFrame(inst)
	case ActionSetTarget:
		f.opSetTarget(inst)
	case ActionGotoLabel:
		f.opGotoLabel(inst)
	case ActionWaitForFrame2:
		f.opWaitForFrame2(inst)
	case ActionDefineFunction2:
		f.opDefineFunction2(inst)
	case ActionTry:
		return f.opTry(inst)
	case ActionWith:
		f.opWith(inst)
	case ActionPush:
		f.opPush(inst)
	case ActionJump:
		f.opJump(inst)
	case ActionGetURL2:
		f.opGetURL2(inst)
	case ActionDefineFunction:
		f.opDefineFunction(inst)
	case ActionIf:
		f.opIf(inst)
	case ActionCall:
		f.opCall()
	case ActionGotoFrame2:
		f.opGotoFrame2(inst)
	}

	return nil
}

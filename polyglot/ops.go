package polyglot

import "fmt"

// op names one guest-facing operation. Each op owns a call site.
type op int

const (
	opIsNull op = iota
	opIsBoolean
	opAsBoolean
	opIsString
	opAsString
	opIsNumber
	opFitsInByte
	opFitsInShort
	opFitsInInt
	opFitsInLong
	opFitsInFloat
	opFitsInDouble
	opAsByte
	opAsShort
	opAsInt
	opAsLong
	opAsFloat
	opAsDouble
	opIsException
	opThrowException
	opGetExceptionType
	opIsExceptionIncompleteSource
	opGetExceptionExitStatus
	opHasExceptionCause
	opGetExceptionCause
	opHasExceptionMessage
	opGetExceptionMessage
	opHasExceptionStackTrace
	opGetExceptionStackTrace
	opHasArrayElements
	opGetArraySize
	opIsArrayElementReadable
	opIsArrayElementModifiable
	opIsArrayElementInsertable
	opIsArrayElementRemovable
	opIsArrayElementWritable
	opIsArrayElementExisting
	opReadArrayElement
	opWriteArrayElement
	opRemoveArrayElement
	opHasMembers
	opGetMembers
	opIsMemberReadable
	opIsMemberModifiable
	opIsMemberInsertable
	opIsMemberRemovable
	opIsMemberInvocable
	opIsMemberWritable
	opIsMemberExisting
	opReadMember
	opWriteMember
	opRemoveMember
	opInvokeMember
	opHasMemberReadSideEffects
	opHasMemberWriteSideEffects
	opHasMetaObject
	opGetMetaObject
	opIsMetaObject
	opGetMetaQualifiedName
	opGetMetaSimpleName
	opIsMetaInstance
	opToDisplayString
	opIsIdenticalOrUndefined
	opIsIdentical
	opIsIdenticalOther
	opIdentityHashCode
	opIsPointer
	opAsPointer
	opToNative
	opIsExecutable
	opExecute
	opIsInstantiable
	opInstantiate
	opHostArguments
	opHasExecutableName
	opGetExecutableName
	opHasDeclaringMetaObject
	opGetDeclaringMetaObject
	opHasBufferElements
	opIsBufferWritable
	opGetBufferSize
	opReadBufferByte
	opWriteBufferByte
	opReadBufferShort
	opWriteBufferShort
	opReadBufferInt
	opWriteBufferInt
	opReadBufferLong
	opWriteBufferLong
	opReadBufferFloat
	opWriteBufferFloat
	opReadBufferDouble
	opWriteBufferDouble
	opHasIterator
	opGetIterator
	opIsIterator
	opHasIteratorNextElement
	opGetIteratorNextElement
	opHasHashEntries
	opGetHashSize
	opIsHashEntryReadable
	opIsHashEntryModifiable
	opIsHashEntryInsertable
	opIsHashEntryRemovable
	opIsHashEntryWritable
	opIsHashEntryExisting
	opReadHashValue
	opReadHashValueOrDefault
	opWriteHashEntry
	opRemoveHashEntry
	opGetHashEntriesIterator
	opGetHashKeysIterator
	opGetHashValuesIterator
	opIsExceptionCause

	numOps
)

var opNames = [numOps]string{
	opIsNull:                      "isNull",
	opIsBoolean:                   "isBoolean",
	opAsBoolean:                   "asBoolean",
	opIsString:                    "isString",
	opAsString:                    "asString",
	opIsNumber:                    "isNumber",
	opFitsInByte:                  "fitsInByte",
	opFitsInShort:                 "fitsInShort",
	opFitsInInt:                   "fitsInInt",
	opFitsInLong:                  "fitsInLong",
	opFitsInFloat:                 "fitsInFloat",
	opFitsInDouble:                "fitsInDouble",
	opAsByte:                      "asByte",
	opAsShort:                     "asShort",
	opAsInt:                       "asInt",
	opAsLong:                      "asLong",
	opAsFloat:                     "asFloat",
	opAsDouble:                    "asDouble",
	opIsException:                 "isException",
	opThrowException:              "throwException",
	opGetExceptionType:            "getExceptionType",
	opIsExceptionIncompleteSource: "isExceptionIncompleteSource",
	opGetExceptionExitStatus:      "getExceptionExitStatus",
	opHasExceptionCause:           "hasExceptionCause",
	opGetExceptionCause:           "getExceptionCause",
	opHasExceptionMessage:         "hasExceptionMessage",
	opGetExceptionMessage:         "getExceptionMessage",
	opHasExceptionStackTrace:      "hasExceptionStackTrace",
	opGetExceptionStackTrace:      "getExceptionStackTrace",
	opHasArrayElements:            "hasArrayElements",
	opGetArraySize:                "getArraySize",
	opIsArrayElementReadable:      "isArrayElementReadable",
	opIsArrayElementModifiable:    "isArrayElementModifiable",
	opIsArrayElementInsertable:    "isArrayElementInsertable",
	opIsArrayElementRemovable:     "isArrayElementRemovable",
	opIsArrayElementWritable:      "isArrayElementWritable",
	opIsArrayElementExisting:      "isArrayElementExisting",
	opReadArrayElement:            "readArrayElement",
	opWriteArrayElement:           "writeArrayElement",
	opRemoveArrayElement:          "removeArrayElement",
	opHasMembers:                  "hasMembers",
	opGetMembers:                  "getMembers",
	opIsMemberReadable:            "isMemberReadable",
	opIsMemberModifiable:          "isMemberModifiable",
	opIsMemberInsertable:          "isMemberInsertable",
	opIsMemberRemovable:           "isMemberRemovable",
	opIsMemberInvocable:           "isMemberInvocable",
	opIsMemberWritable:            "isMemberWritable",
	opIsMemberExisting:            "isMemberExisting",
	opReadMember:                  "readMember",
	opWriteMember:                 "writeMember",
	opRemoveMember:                "removeMember",
	opInvokeMember:                "invokeMember",
	opHasMemberReadSideEffects:    "hasMemberReadSideEffects",
	opHasMemberWriteSideEffects:   "hasMemberWriteSideEffects",
	opHasMetaObject:               "hasMetaObject",
	opGetMetaObject:               "getMetaObject",
	opIsMetaObject:                "isMetaObject",
	opGetMetaQualifiedName:        "getMetaQualifiedName",
	opGetMetaSimpleName:           "getMetaSimpleName",
	opIsMetaInstance:              "isMetaInstance",
	opToDisplayString:             "toDisplayString",
	opIsIdenticalOrUndefined:      "isIdenticalOrUndefined",
	opIsIdentical:                 "isIdentical",
	opIsIdenticalOther:            "isIdenticalOther",
	opIdentityHashCode:            "identityHashCode",
	opIsPointer:                   "isPointer",
	opAsPointer:                   "asPointer",
	opToNative:                    "toNative",
	opIsExecutable:                "isExecutable",
	opExecute:                     "execute",
	opIsInstantiable:              "isInstantiable",
	opInstantiate:                 "instantiate",
	opHostArguments:               "hostArguments",
	opHasExecutableName:           "hasExecutableName",
	opGetExecutableName:           "getExecutableName",
	opHasDeclaringMetaObject:      "hasDeclaringMetaObject",
	opGetDeclaringMetaObject:      "getDeclaringMetaObject",
	opHasBufferElements:           "hasBufferElements",
	opIsBufferWritable:            "isBufferWritable",
	opGetBufferSize:               "getBufferSize",
	opReadBufferByte:              "readBufferByte",
	opWriteBufferByte:             "writeBufferByte",
	opReadBufferShort:             "readBufferShort",
	opWriteBufferShort:            "writeBufferShort",
	opReadBufferInt:               "readBufferInt",
	opWriteBufferInt:              "writeBufferInt",
	opReadBufferLong:              "readBufferLong",
	opWriteBufferLong:             "writeBufferLong",
	opReadBufferFloat:             "readBufferFloat",
	opWriteBufferFloat:            "writeBufferFloat",
	opReadBufferDouble:            "readBufferDouble",
	opWriteBufferDouble:           "writeBufferDouble",
	opHasIterator:                 "hasIterator",
	opGetIterator:                 "getIterator",
	opIsIterator:                  "isIterator",
	opHasIteratorNextElement:      "hasIteratorNextElement",
	opGetIteratorNextElement:      "getIteratorNextElement",
	opHasHashEntries:              "hasHashEntries",
	opGetHashSize:                 "getHashSize",
	opIsHashEntryReadable:         "isHashEntryReadable",
	opIsHashEntryModifiable:       "isHashEntryModifiable",
	opIsHashEntryInsertable:       "isHashEntryInsertable",
	opIsHashEntryRemovable:        "isHashEntryRemovable",
	opIsHashEntryWritable:         "isHashEntryWritable",
	opIsHashEntryExisting:         "isHashEntryExisting",
	opReadHashValue:               "readHashValue",
	opReadHashValueOrDefault:      "readHashValueOrDefault",
	opWriteHashEntry:              "writeHashEntry",
	opRemoveHashEntry:             "removeHashEntry",
	opGetHashEntriesIterator:      "getHashEntriesIterator",
	opGetHashKeysIterator:         "getHashKeysIterator",
	opGetHashValuesIterator:       "getHashValuesIterator",
	opIsExceptionCause:            "isExceptionCause",
}

func (o op) String() string {
	if o >= 0 && o < numOps {
		return opNames[o]
	}
	return fmt.Sprintf("op(%d)", int(o))
}

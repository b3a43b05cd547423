package descriptor

// Field tag numbers from google/protobuf/descriptor.proto, used to build
// SourceCodeInfo path vectors. These must match the wire schema exactly;
// see the tag table in the external interfaces section of the design.
const (
	fileSyntaxTag     = 12
	filePackageTag    = 2
	fileDependencyTag = 3
	filePublicDepTag  = 10
	fileWeakDepTag    = 11
	fileMessageTag    = 4
	fileEnumTag       = 5
	fileServiceTag    = 6
	fileExtensionTag  = 7
	fileOptionsTag    = 8

	messageNameTag           = 1
	messageFieldTag          = 2
	messageNestedTypeTag     = 3
	messageEnumTypeTag       = 4
	messageExtensionRangeTag = 5
	messageExtensionTag      = 6
	messageOptionsTag        = 7
	messageOneofTag          = 8
	messageReservedRangeTag  = 9
	messageReservedNameTag   = 10

	oneofOptionsTag = 2

	fieldNameTag         = 1
	fieldExtendeeTag     = 2
	fieldNumberTag       = 3
	fieldLabelTag        = 4
	fieldTypeTag         = 5
	fieldTypeNameTag     = 6
	fieldDefaultValueTag = 7
	fieldOptionsTag      = 8
	fieldJSONNameTag     = 10

	enumNameTag          = 1
	enumValueTag         = 2
	enumOptionsTag       = 3
	enumReservedRangeTag = 4
	enumReservedNameTag  = 5

	enumValueNameTag    = 1
	enumValueNumberTag  = 2
	enumValueOptionsTag = 3

	serviceNameTag    = 1
	serviceMethodTag  = 2
	serviceOptionsTag = 3

	methodNameTag            = 1
	methodInputTypeTag       = 2
	methodOutputTypeTag      = 3
	methodOptionsTag         = 4
	methodClientStreamingTag = 5
	methodServerStreamingTag = 6

	uninterpretedOptionTag = 999
)

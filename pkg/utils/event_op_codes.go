package utils

// Opcodes are appended as the final byte of every msgpack-encoded packet
// published over Redis, so subscribers can dispatch without decoding first.
const (
	EvOpToast uint8 = 0

	EvOpCreatePost uint8 = 1
	EvOpDeletePost uint8 = 2

	EvOpLikeAdd    uint8 = 3
	EvOpLikeRemove uint8 = 4

	EvOpRetweetAdd uint8 = 5

	EvOpBookmarkAdd    uint8 = 6
	EvOpBookmarkRemove uint8 = 7

	EvOpCommentAdd uint8 = 8
)

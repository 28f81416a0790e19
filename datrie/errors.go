package datrie

import "errors"

// ErrDuplicateWord is returned by Build when the same word is inserted twice,
// or when a word exactly equals a word already reduced to a tail.
var ErrDuplicateWord = errors.New("datrie: duplicate word")

// ErrNullByte is returned by Build when a word contains byte 0, the reserved
// end-of-string marker.
var ErrNullByte = errors.New("datrie: word contains reserved end-of-string byte 0")

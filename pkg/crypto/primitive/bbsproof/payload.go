/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bbsproof

import (
	"encoding/binary"
	"errors"
	"math"
)

const (
	bitsInByte          = 8
	payloadCounterBytes = 2
)

// poKPayload prefixes a serialized proof with the signed messages count and a bitmap of the revealed indexes.
type poKPayload struct {
	messagesCount int
	revealed      []int
}

func newPoKPayload(messagesCount int, revealed []int) *poKPayload {
	return &poKPayload{
		messagesCount: messagesCount,
		revealed:      revealed,
	}
}

func parsePoKPayload(bytes []byte) (*poKPayload, error) {
	if len(bytes) < payloadCounterBytes {
		return nil, errors.New("invalid size of PoK payload")
	}

	messagesCount := int(binary.BigEndian.Uint16(bytes))
	payload := newPoKPayload(messagesCount, nil)

	if len(bytes) < payload.lenInBytes() {
		return nil, errors.New("invalid size of PoK payload")
	}

	bitmap := bytes[payloadCounterBytes:payload.lenInBytes()]
	revealed := make([]int, 0)

	for i := 0; i < len(bitmap)*bitsInByte; i++ {
		if bitmap[i/bitsInByte]&(1<<(i%bitsInByte)) == 0 {
			continue
		}

		if i >= messagesCount {
			return nil, errors.New("invalid revealed index in PoK payload")
		}

		revealed = append(revealed, i)
	}

	payload.revealed = revealed

	return payload, nil
}

func (p *poKPayload) lenInBytes() int {
	return payloadCounterBytes + p.messagesCount/bitsInByte + 1
}

func (p *poKPayload) toBytes() ([]byte, error) {
	if p.messagesCount > math.MaxUint16 {
		return nil, errors.New("too many messages for PoK payload")
	}

	bytes := make([]byte, p.lenInBytes())
	binary.BigEndian.PutUint16(bytes, uint16(p.messagesCount))

	bitmap := bytes[payloadCounterBytes:]

	for _, r := range p.revealed {
		if r < 0 || r >= p.messagesCount {
			return nil, errors.New("invalid size of PoK payload")
		}

		bitmap[r/bitsInByte] |= 1 << (r % bitsInByte)
	}

	return bytes, nil
}

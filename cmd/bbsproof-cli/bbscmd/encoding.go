/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bbscmd

import (
	"encoding/json"
	"io"
	"os"
	"strconv"

	"github.com/btcsuite/btcutil/base58"
	"github.com/multiformats/go-multibase"
	"github.com/pkg/errors"
)

// keyPairDocument is the keygen output.
type keyPairDocument struct {
	PrivateKey string `json:"privateKey"`
	PublicKey  string `json:"publicKey"`
}

// proofDocument is the derive-proof output and the verify-proof input.
type proofDocument struct {
	Proof            string   `json:"proof"`
	Nonce            string   `json:"nonce"`
	RevealedMessages []string `json:"revealedMessages"`
}

func decodeKey(value, name string) ([]byte, error) {
	key := base58.Decode(value)
	if len(key) == 0 {
		return nil, errors.Errorf("%s is not valid base58", name)
	}

	return key, nil
}

func encodeMultibase(data []byte) (string, error) {
	return multibase.Encode(multibase.Base64url, data)
}

func decodeMultibase(value, name string) ([]byte, error) {
	_, data, err := multibase.Decode(value)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", name)
	}

	return data, nil
}

func readMessages(path string) ([][]byte, error) {
	var messages []string

	err := readJSON(path, &messages)
	if err != nil {
		return nil, errors.Wrap(err, "read messages")
	}

	if len(messages) == 0 {
		return nil, errors.New("messages file has no messages")
	}

	return toBytes(messages), nil
}

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		return err
	}

	return json.Unmarshal(data, v)
}

func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	return encoder.Encode(v)
}

func parseIndexes(values []string) ([]int, error) {
	indexes := make([]int, len(values))

	for i, v := range values {
		ind, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid revealed index %q", v)
		}

		indexes[i] = ind
	}

	return indexes, nil
}

func toBytes(values []string) [][]byte {
	res := make([][]byte, len(values))

	for i, v := range values {
		res[i] = []byte(v)
	}

	return res
}

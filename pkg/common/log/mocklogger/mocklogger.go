/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mocklogger

import (
	"github.com/hyperledger/aries-framework-go/component/log/mocklogger"
)

// MockLogger is a mocked logger that can be used for testing.
type MockLogger = mocklogger.MockLogger

// Provider is a mock logger provider that can be used for testing.
type Provider = mocklogger.Provider

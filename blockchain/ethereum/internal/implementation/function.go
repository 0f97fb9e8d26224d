// Copyright (c) 2026 - for information on the respective copyright owner
// see the NOTICE file and/or the repository at
// https://github.com/direct-state-transfer/gasless
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package implementation

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// functionIDSep separates the parts of a function identifier.
const functionIDSep = "::"

// moduleABIs holds the interface of every contract module known to the node, by module name.
var moduleABIs = map[string]string{
	"billboard": `[
	{
		"type": "function",
		"name": "send_message",
		"stateMutability": "nonpayable",
		"inputs": [
			{"name": "billboard", "type": "address"},
			{"name": "message", "type": "string"}
		],
		"outputs": []
	}
]`,
}

// Function is a contract function resolved from an identifier of the form
// <contract-address>::<module>::<function>.
type Function struct {
	Contract common.Address
	Module   string
	Name     string

	method abi.Method
	abi    abi.ABI
}

// ParseFunctionID resolves the function identifier against the known module interfaces.
func ParseFunctionID(id string) (*Function, error) {
	parts := strings.Split(id, functionIDSep)
	if len(parts) != 3 {
		return nil, errors.Errorf("invalid function identifier %q, want <address>::<module>::<function>", id)
	}
	if !common.IsHexAddress(parts[0]) {
		return nil, errors.Errorf("invalid contract address %q in function identifier", parts[0])
	}
	abiJSON, ok := moduleABIs[parts[1]]
	if !ok {
		return nil, errors.Errorf("unknown module %q in function identifier", parts[1])
	}
	parsed, err := abi.JSON(strings.NewReader(abiJSON))
	if err != nil {
		return nil, errors.Wrap(err, "parsing module interface")
	}
	method, ok := parsed.Methods[parts[2]]
	if !ok {
		return nil, errors.Errorf("unknown function %q in module %q", parts[2], parts[1])
	}
	return &Function{
		Contract: common.HexToAddress(parts[0]),
		Module:   parts[1],
		Name:     parts[2],
		method:   method,
		abi:      parsed,
	}, nil
}

// Pack encodes the call data for the function with the given arguments.
// Address arguments may be given as hex strings.
func (f *Function) Pack(args []interface{}) ([]byte, error) {
	if len(args) != len(f.method.Inputs) {
		return nil, errors.Errorf("function %s takes %d argument(s), got %d", f, len(f.method.Inputs), len(args))
	}
	converted := make([]interface{}, len(args))
	for i, input := range f.method.Inputs {
		arg, err := convertArg(input.Type, args[i])
		if err != nil {
			return nil, errors.WithMessagef(err, "argument %s", input.Name)
		}
		converted[i] = arg
	}
	data, err := f.abi.Pack(f.Name, converted...)
	return data, errors.Wrap(err, "encoding call data")
}

func convertArg(t abi.Type, arg interface{}) (interface{}, error) {
	switch t.T {
	case abi.AddressTy:
		switch v := arg.(type) {
		case common.Address:
			return v, nil
		case string:
			if !common.IsHexAddress(v) {
				return nil, errors.Errorf("invalid address %q", v)
			}
			return common.HexToAddress(v), nil
		}
	case abi.StringTy:
		if s, ok := arg.(string); ok {
			return s, nil
		}
		return fmt.Sprint(arg), nil
	case abi.UintTy, abi.IntTy:
		if t.Size <= 64 {
			break
		}
		switch v := arg.(type) {
		case int:
			return big.NewInt(int64(v)), nil
		case int64:
			return big.NewInt(v), nil
		case uint64:
			return new(big.Int).SetUint64(v), nil
		}
	}
	return arg, nil
}

// String returns the function identifier.
func (f *Function) String() string {
	return strings.Join([]string{f.Contract.Hex(), f.Module, f.Name}, functionIDSep)
}

// Package contracts loads versioned contract interface files and exposes their functions to the
// codec.
//
// Interface files live under <version>/<Name>.json and hold either a bare ABI array or an object
// {"abi": [...], "addresses": {"<chainId>": "<address>"}}.
package contracts

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/smartcontractkit/deal-console/codec/descriptor"
	"github.com/smartcontractkit/deal-console/codec/signature"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidFormat = errors.New("invalid ABI format")
	ErrAmbiguous     = errors.New("ambiguous function name")
)

// ContractInterface is the parsed interface file of one contract.
type ContractInterface struct {
	Name string `json:"name" yaml:"name"`
	// ABI holds every entry of the file: functions, events, errors, constructors.
	ABI       []descriptor.ContractFunction `json:"abi" yaml:"abi"`
	Addresses map[string]string             `json:"addresses" yaml:"addresses"`
}

// Version is a set of contract interfaces released together.
type Version struct {
	ID          string              `json:"id" yaml:"id"`
	Name        string              `json:"name" yaml:"name"`
	Version     string              `json:"version" yaml:"version"`
	Description string              `json:"description" yaml:"description"`
	CreatedAt   time.Time           `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
	Contracts   []ContractInterface `json:"contracts" yaml:"contracts"`
}

// Contract returns the contract called name.
func (v Version) Contract(name string) (ContractInterface, error) {
	for _, c := range v.Contracts {
		if c.Name == name {
			return c, nil
		}
	}

	return ContractInterface{}, fmt.Errorf("contract %s in version %s: %w", name, v.ID, ErrNotFound)
}

// ParseInterface parses the content of <name>.json.
func ParseInterface(name string, raw []byte) (ContractInterface, error) {
	c := ContractInterface{Name: name, Addresses: map[string]string{}}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &c.ABI); err != nil {
			return ContractInterface{}, fmt.Errorf("%w in %s.json: %w", ErrInvalidFormat, name, err)
		}

		return c, nil
	}

	var wrapped struct {
		ABI       json.RawMessage   `json:"abi"`
		Addresses map[string]string `json:"addresses"`
	}
	if err := json.Unmarshal(trimmed, &wrapped); err != nil || !isJSONArray(wrapped.ABI) {
		return ContractInterface{}, fmt.Errorf("%w in %s.json", ErrInvalidFormat, name)
	}
	if err := json.Unmarshal(wrapped.ABI, &c.ABI); err != nil {
		return ContractInterface{}, fmt.Errorf("%w in %s.json: %w", ErrInvalidFormat, name, err)
	}
	if wrapped.Addresses != nil {
		c.Addresses = wrapped.Addresses
	}

	return c, nil
}

func isJSONArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

// Functions returns the callable functions of the interface, in file order. Entries without a
// type are functions.
func (c ContractInterface) Functions() []descriptor.ParsedFunction {
	var fns []descriptor.ParsedFunction
	for _, entry := range c.ABI {
		if entry.Type != descriptor.EntryTypeFunction && entry.Type != "" {
			continue
		}
		fns = append(fns, descriptor.NewParsedFunction(entry))
	}

	return fns
}

// Function looks a function up by canonical signature, e.g. "transfer(address,uint256)", or by
// name when the name is not overloaded.
func (c ContractInterface) Function(nameOrSignature string) (descriptor.ParsedFunction, error) {
	key := strings.ReplaceAll(strings.TrimSpace(nameOrSignature), " ", "")
	bySignature := strings.Contains(key, "(")

	var matches []descriptor.ParsedFunction
	for _, fn := range c.Functions() {
		if (bySignature && fn.Signature == key) || (!bySignature && fn.Name == key) {
			matches = append(matches, fn)
		}
	}

	switch len(matches) {
	case 0:
		return descriptor.ParsedFunction{}, fmt.Errorf("function %s in %s: %w", nameOrSignature, c.Name, ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		sigs := make([]string, len(matches))
		for i, m := range matches {
			sigs[i] = m.Signature
		}

		return descriptor.ParsedFunction{}, fmt.Errorf("%w %s in %s, use one of %s",
			ErrAmbiguous, nameOrSignature, c.Name, strings.Join(sigs, ", "))
	}
}

// FunctionBySelector looks a function up by its 4-byte selector, with or without 0x prefix.
func (c ContractInterface) FunctionBySelector(selector string) (descriptor.ParsedFunction, error) {
	want := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(selector), "0x"))
	for _, fn := range c.Functions() {
		if strings.TrimPrefix(signature.Of(fn), "0x") == want {
			return fn, nil
		}
	}

	return descriptor.ParsedFunction{}, fmt.Errorf("selector %s in %s: %w", selector, c.Name, ErrNotFound)
}

// Address returns the deployed address of the contract on chainID.
func (c ContractInterface) Address(chainID string) (string, bool) {
	addr, ok := c.Addresses[chainID]
	return addr, ok
}

/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package executor

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// xmlNode is a namespace-free element tree used to turn SOAP responses into JSON.
type xmlNode struct {
	name     string
	attrs    []xml.Attr
	children []*xmlNode
	text     strings.Builder
}

// parseXML reads the document into a tree rooted at an unnamed document node.
func parseXML(data []byte) (*xmlNode, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	decoder.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) {
		return input, nil
	}

	root := &xmlNode{}
	stack := []*xmlNode{root}
	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse XML: %w", err)
		}

		top := stack[len(stack)-1]
		switch t := token.(type) {
		case xml.StartElement:
			n := &xmlNode{name: t.Name.Local, attrs: t.Attr}
			top.children = append(top.children, n)
			stack = append(stack, n)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			top.text.Write(t)
		}
	}

	if len(root.children) == 0 {
		return nil, errors.New("failed to parse XML: no root element")
	}
	return root, nil
}

// child returns the first direct child with the local name.
func (n *xmlNode) child(name string) *xmlNode {
	for _, c := range n.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

func (n *xmlNode) textContent() string {
	return strings.TrimSpace(n.text.String())
}

// toJSON maps the children of n to an object. Leaf elements become strings, repeated elements become
// arrays and attributes are kept under "@name" keys.
func (n *xmlNode) toJSON() interface{} {
	attrs := n.jsonAttrs()
	if len(n.children) == 0 && len(attrs) == 0 {
		return n.textContent()
	}

	obj := make(map[string]interface{}, len(n.children)+len(attrs))
	for k, v := range attrs {
		obj[k] = v
	}
	for _, c := range n.children {
		value := c.toJSON()
		switch existing := obj[c.name].(type) {
		case nil:
			obj[c.name] = value
		case []interface{}:
			obj[c.name] = append(existing, value)
		default:
			obj[c.name] = []interface{}{existing, value}
		}
	}
	if text := n.textContent(); text != "" {
		obj["#text"] = text
	}
	return obj
}

func (n *xmlNode) jsonAttrs() map[string]string {
	var attrs map[string]string
	for _, a := range n.attrs {
		if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
			continue
		}
		if attrs == nil {
			attrs = map[string]string{}
		}
		attrs["@"+a.Name.Local] = a.Value
	}
	return attrs
}

func xmlEscape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package host

// Theme is the read-only style hint propagated by the host.
type Theme struct {
	PrimaryColor string `json:"primaryColor"`
}

// Style is the frame border derived from the theme and focus state.
type Style struct {
	Border  string `json:"border,omitempty"`
	Outline string `json:"outline,omitempty"`
}

// StyleFor returns the border style. Without a theme there is no styling.
func StyleFor(theme *Theme, focused bool) Style {
	if theme == nil {
		return Style{}
	}
	color := "gray"
	if focused {
		color = theme.PrimaryColor
	}
	border := "1px solid " + color
	return Style{Border: border, Outline: border}
}

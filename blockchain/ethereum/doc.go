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

// Package ethereum provides the chain client factory and the signing agents for
// ethereum compatible networks. The actual implementation of the functionality
// is done in internal/implementation, so that it can be shared by this package
// and the test helper package "./ethereumtest", which binds it to a simulated
// backend.
//
// In addition to the intended functionality, this package is also structured
// to isolate all the imports from "go-ethereum" project, as it is licensed
// under LGPL.
//
// In order to provide this isolation the exported methods in this package
// use only those types defined in the root package of this project and in std lib.
// The other packages in this project therefore never import "go-ethereum".
package ethereum

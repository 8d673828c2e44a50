// Copyright 2023 The gmskit Authors
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.

// Package gmskit generates GAMS modeling-language statements
// from symbolic expression trees.
//
// The expr package builds and renders expressions; the gms
// package declares model symbols and stages the statements
// of a generated program.
package gmskit

/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package rtconfig holds the runtime logging configuration: which optional
// events the logging pipeline emits.
//
// A Store is the single owned instance shared by a pipeline and whoever
// administers it. Reads are lock-free snapshots; writes replace the whole
// record. Concurrent writers are last-writer-wins, and a Set never loses
// the fields it did not mention.
package rtconfig

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

package logging

// AlertType is the kind of user-facing notification.
type AlertType string

const (
	AlertSuccess AlertType = "success"
	AlertError   AlertType = "error"
	AlertInfo    AlertType = "info"
	AlertWarning AlertType = "warning"
)

// alertFor maps a level to the notification kind shown for it.
func alertFor(l Level) AlertType {
	switch l {
	case LevelError:
		return AlertError
	case LevelWarn:
		return AlertWarning
	default:
		return AlertInfo
	}
}

// Notifier forwards a logged message to a user-facing surface, e.g. a toast
// in a UI or a chat webhook. Implementations must not block.
type Notifier interface {
	Notify(message string, alert AlertType, opts map[string]any)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(message string, alert AlertType, opts map[string]any)

// Notify calls f.
func (f NotifierFunc) Notify(message string, alert AlertType, opts map[string]any) {
	f(message, alert, opts)
}

// Notify opts a single log call into notification. Pass it among the
// params of a log call; it is consumed there and never logged.
type Notify struct {
	ShowToast    bool
	ShowAlert    bool
	AlertOptions map[string]any
}

func (n Notify) wanted() bool { return n.ShowToast || n.ShowAlert }

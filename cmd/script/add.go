/*
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

package script

import (
	"bufio"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/canlab/go-canmon/pkg/canbus"
)

// readEntries reads frame literals from a script file, one per line. Blank
// lines and # comments are skipped. Entries are checked with the frame
// parser; a parse warning does not reject the script.
func readEntries(cmd *cobra.Command, path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var entries []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if _, err := canbus.ParseFrame(line); err != nil {
			cmd.Printf("warning: line %q: %s\n", line, err)
		}
		entries = append(entries, line)
	}
	return entries, scanner.Err()
}

func NewAddCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name> <file>",
		Short: "Store a replay script in the library",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := readEntries(cmd, args[1])
			if err != nil {
				return err
			}
			library, err := openLibrary()
			if err != nil {
				return err
			}
			defer library.Close()
			if err := library.Put(args[0], entries); err != nil {
				return err
			}
			cmd.Printf("Stored script %s (%d entries)\n", args[0], len(entries))
			return nil
		},
	}
	return cmd
}

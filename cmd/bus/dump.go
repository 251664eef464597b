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

package bus

import (
	"github.com/spf13/cobra"
)

func NewDumpCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Show the cached frames in order of first sighting",
		RunE: func(cmd *cobra.Command, args []string) error {
			output, err := newApiClient().Dump()
			if err != nil {
				return err
			}
			cmd.Print(output)
			return nil
		},
	}
	return cmd
}

package shell

import (
	"fexp/internal/fsops"
	"fexp/internal/log"
	"fexp/pkg/types"
)

var permOptions = []string{
	"1. Add read permission for all",
	"2. Add write permission for all",
	"3. Add execute permission for all",
	"4. Remove read permission for all",
	"5. Remove write permission for all",
	"6. Remove execute permission for all",
	"7. Set to read-only for all",
	"8. Set custom permissions (octal)",
}

func (s *Shell) managePermissions() {
	s.out.Header("Manage Permissions")
	name := s.readLine("Enter filename: ")

	path, err := s.resolve(name)
	if err != nil {
		s.out.Fail("Permission management error", err)
		return
	}
	exists, err := fsops.Exists(path)
	if err != nil {
		s.out.Fail("Permission management error", err)
		return
	}
	if !exists {
		s.out.Warning("File does not exist!")
		return
	}

	current, err := s.fs.Permissions(path)
	if err != nil {
		s.out.Fail("Permission management error", err)
		return
	}
	s.out.Println("Current permissions: " + current.String())

	s.out.Println("\nPermission options:")
	for _, opt := range permOptions {
		s.out.Println(opt)
	}
	option, _ := s.readInt("Choose option: ")
	change := fsops.PermChange(option)

	var octal types.Perm
	if change == fsops.SetOctal {
		input := s.readLine("Enter octal permissions (e.g., 755): ")
		octal, err = types.ParseOctal(input)
		if err != nil {
			log.LogWithFields(log.F("input", input)).Debug(err.Error())
			s.out.Error("Invalid octal value!")
			return
		}
	}

	updated, ok := change.Apply(current, octal)
	if !ok {
		s.out.Println("Invalid option!")
		return
	}
	if err := s.fs.Chmod(path, updated); err != nil {
		s.out.Fail("Permission management error", err)
		return
	}

	s.out.Success("Permissions updated successfully!")
	s.out.Println("New permissions: " + updated.String())
}

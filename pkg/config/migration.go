package config

// ProbeAndMigrate opens the configuration root for currentVersion under
// base, migrating forward from the newest older version's root if the
// current one does not yet exist, per spec.md §6: "The engine probes
// roots from newest to oldest; on finding an older version it offers
// in-place migration then deletes the old root."
func ProbeAndMigrate(base Registry, currentVersion string) (Registry, error) {
	names, err := base.SubKeyNames()
	if err != nil {
		return nil, err
	}

	for _, name := range names {
		if name == currentVersion {
			return base.OpenSubKey(currentVersion)
		}
	}

	newest := ""
	for _, name := range names {
		if compareVersions(name, currentVersion) >= 0 {
			continue
		}
		if newest == "" || compareVersions(name, newest) > 0 {
			newest = name
		}
	}

	current, err := base.CreateSubKey(currentVersion)
	if err != nil {
		return nil, err
	}
	if newest == "" || compareVersions(newest, currentVersion) >= 0 {
		return current, nil
	}

	old, err := base.OpenSubKey(newest)
	if err != nil {
		return current, nil
	}
	if err := copyKeyTree(old, current); err != nil {
		old.Close()
		return current, err
	}
	old.Close()

	return current, base.DeleteSubKeyTree(newest)
}

// copyKeyTree recursively copies every value and subkey from src into dst.
// Values are copied by type-specific probe (string, then uint32, then
// binary) since Registry does not expose a generic "enumerate values"
// primitive; migration only needs to move the value names Config itself
// writes, all of which are one of these three shapes.
func copyKeyTree(src, dst Registry) error {
	children, err := src.SubKeyNames()
	if err != nil {
		return err
	}
	for _, name := range children {
		srcChild, err := src.OpenSubKey(name)
		if err != nil {
			return err
		}
		dstChild, err := dst.CreateSubKey(name)
		if err != nil {
			srcChild.Close()
			return err
		}
		if err := copyKeyTree(srcChild, dstChild); err != nil {
			srcChild.Close()
			dstChild.Close()
			return err
		}
		srcChild.Close()
		dstChild.Close()
	}
	return copyKnownValues(src, dst)
}

// copyKnownValues copies every value name Config defines, from src to
// dst, ignoring names that are absent in src.
func copyKnownValues(src, dst Registry) error {
	for _, name := range allValueNames {
		if value, err := src.GetString(name); err == nil {
			if err := dst.SetString(name, value); err != nil {
				return err
			}
			continue
		}
		if value, err := src.GetUint32(name); err == nil {
			if err := dst.SetUint32(name, value); err != nil {
				return err
			}
			continue
		}
		if value, err := src.GetBinary(name); err == nil {
			if err := dst.SetBinary(name, value); err != nil {
				return err
			}
		}
	}
	return nil
}

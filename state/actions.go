package state

import (
	"errors"
	"fmt"
)

type (
	Action func(w Writer) error

	// UpdateFunction receives the current value and returns the value to store.
	UpdateFunction func(value any) (any, error)
)

var ErrValueNotFound = errors.New("value not found")

// AddValue adds a new value, fails if the key is already in use.
func AddValue(key Key, value any) Action {
	return func(w Writer) error {
		if err := checkKeyAndValue(key, value); err != nil {
			return err
		}
		if _, ok := w.Get(key); ok {
			return fmt.Errorf("value with key %x already exists", []byte(key))
		}
		w.Put(key, value)
		return nil
	}
}

// SetValue adds or replaces the value of key.
func SetValue(key Key, value any) Action {
	return func(w Writer) error {
		if err := checkKeyAndValue(key, value); err != nil {
			return err
		}
		w.Put(key, value)
		return nil
	}
}

// UpdateValue replaces existing value with the result of f.
func UpdateValue(key Key, f UpdateFunction) Action {
	return func(w Writer) error {
		if f == nil {
			return errors.New("update function is nil")
		}
		v, ok := w.Get(key)
		if !ok {
			return fmt.Errorf("updating %x: %w", []byte(key), ErrValueNotFound)
		}
		nv, err := f(v)
		if err != nil {
			return fmt.Errorf("unable to update value: %w", err)
		}
		if err := checkKeyAndValue(key, nv); err != nil {
			return err
		}
		w.Put(key, nv)
		return nil
	}
}

// DeleteValue removes the value of key, fails if there is no such value.
func DeleteValue(key Key) Action {
	return func(w Writer) error {
		if _, ok := w.Get(key); !ok {
			return fmt.Errorf("deleting %x: %w", []byte(key), ErrValueNotFound)
		}
		w.Delete(key)
		return nil
	}
}

func checkKeyAndValue(key Key, value any) error {
	if len(key) < 2 || key.Kind() == KindMeta {
		return fmt.Errorf("invalid key %x", []byte(key))
	}
	if value == nil {
		return errors.New("value is nil")
	}
	return nil
}
